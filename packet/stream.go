package packet

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cybroslabs/macsec-gcm-ref/block128"
	"github.com/cybroslabs/macsec-gcm-ref/gcm"
)

const (
	tagSize         = 16
	lookaheadBlocks = 4
)

// StreamDecryptor decrypts one packet's encrypted-and-authenticated region
// as it arrives from src, holding back just enough unread bytes that the
// trailing 16-byte tag is never mistaken for ciphertext and decrypted. The
// caller must already have called PacketInit on e and fed any auth-only
// prefix through AddAuth before wrapping src.
type StreamDecryptor struct {
	e   *gcm.Engine
	src io.Reader

	buf   [tagSize * lookaheadBlocks]byte
	fill  int // valid bytes currently held in buf
	avail int // leading bytes of buf that are decrypted and ready to read
	off   int // read cursor within [0, avail)

	eof bool
	err error
}

// NewStreamDecryptor wraps src for incremental decryption against e.
func NewStreamDecryptor(e *gcm.Engine, src io.Reader) *StreamDecryptor {
	return &StreamDecryptor{e: e, src: src}
}

func (s *StreamDecryptor) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if s.off < s.avail {
		n := copy(p, s.buf[s.off:s.avail])
		s.off += n
		return n, nil
	}
	if s.err != nil {
		return 0, s.err
	}
	if s.eof {
		return 0, io.EOF
	}
	if err := s.fillMore(); err != nil {
		s.err = err
		return 0, err
	}
	return s.Read(p)
}

func (s *StreamDecryptor) fillMore() error {
	copy(s.buf[:], s.buf[s.avail:s.fill])
	s.fill -= s.avail
	s.avail = 0
	s.off = 0

	n, err := io.ReadFull(s.src, s.buf[s.fill:])
	s.fill += n
	reachedEOF := false
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			reachedEOF = true
		} else {
			return err
		}
	}

	if reachedEOF {
		return s.finish()
	}

	// Not at EOF: decrypt every full block except the last one, which stays
	// buffered since it might turn out to hold (part of) the tag once more
	// data arrives.
	decryptable := s.fill - tagSize
	decryptable -= decryptable % 16
	off := 0
	for off < decryptable {
		if err := s.decryptInPlace(off, 16); err != nil {
			return err
		}
		off += 16
	}
	s.avail = off
	return nil
}

func (s *StreamDecryptor) finish() error {
	if s.fill < tagSize {
		return fmt.Errorf("gcm: stream too short, no space for tag")
	}
	cipherLen := s.fill - tagSize

	off := 0
	for cipherLen-off >= 16 {
		if err := s.decryptInPlace(off, 16); err != nil {
			return err
		}
		off += 16
	}
	if rem := cipherLen - off; rem > 0 {
		if err := s.decryptInPlace(off, rem); err != nil {
			return err
		}
		off += rem
	}

	tag, err := s.e.GetTag()
	if err != nil {
		return err
	}
	if !bytes.Equal(tag[:], s.buf[cipherLen:s.fill]) {
		return gcm.ErrTagMismatch
	}
	s.avail = cipherLen
	s.eof = true
	return nil
}

func (s *StreamDecryptor) decryptInPlace(off, size int) error {
	var in block128.Block128
	copy(in[:], s.buf[off:off+size])
	out, err := s.e.Decrypt(in, size)
	if err != nil {
		return err
	}
	copy(s.buf[off:off+size], out[:size])
	return nil
}
