// Package gcm implements the stateful AES-128-GCM engine: per-key AES
// key schedule and GHASH subkey H, plus per-packet counter and GHASH
// state, driven one AAD byte or one 16-byte data block at a time.
package gcm

import (
	"fmt"
	"math"

	"github.com/cybroslabs/macsec-gcm-ref/aesref"
	"github.com/cybroslabs/macsec-gcm-ref/block128"
	"github.com/cybroslabs/macsec-gcm-ref/gf128"
	"go.uber.org/zap"
)

// Engine owns the AES-128 key schedule and GHASH subkey H (bound at
// SetKey time, persisting across packets) plus the per-packet GcmState
// reset by PacketInit. It is not safe for concurrent use; independent
// Engine values may run in parallel without coordination.
type Engine struct {
	logger *zap.SugaredLogger

	keyed bool
	ks    aesref.KeySchedule
	h     block128.Block128

	packetReady bool
	ctr         block128.Block128 // last counter block encrypted (EK0's after PacketInit); incremented before each keystream block
	ek0         block128.Block128
	x           block128.Block128 // GHASH accumulator

	aadAcc    [16]byte
	aadIdx    int
	aadSealed bool

	alenBytes uint64
	plenBytes uint64
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger installs a debug-level log sink. With a nil logger (the
// default) the engine stays silent.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New constructs an unkeyed Engine. Call SetKey before any other method.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetKey builds and caches the AES-128 key schedule and computes
// H = AES_K(0^128). Any prior per-packet state is discarded.
func (e *Engine) SetKey(key [16]byte) {
	e.ks = aesref.ExpandKey(key)
	e.h = block128.Block128(aesref.Encrypt(e.ks, [16]byte{}))
	e.keyed = true
	e.packetReady = false
	e.logger.Debugw("gcm: key set", "h", fmt.Sprintf("%x", e.h[:]))
}

// PacketInit establishes the initial counter block from (sci, pn) and
// caches EK0, then resets all per-packet state. It returns ErrNotKeyed if
// SetKey has not been called.
func (e *Engine) PacketInit(sci uint64, pn uint32) error {
	if !e.keyed {
		return ErrNotKeyed
	}

	var ctr block128.Block128
	for i := 0; i < 8; i++ {
		ctr[i] = byte(sci >> (8 * (7 - i)))
	}
	for i := 0; i < 4; i++ {
		ctr[8+i] = byte(pn >> (8 * (3 - i)))
	}
	ctr = ctr.IncrementU32(1)

	e.ctr = ctr
	e.ek0 = block128.Block128(aesref.Encrypt(e.ks, [16]byte(ctr)))
	e.x = block128.Block128{}
	e.aadIdx = 0
	e.aadSealed = false
	e.alenBytes = 0
	e.plenBytes = 0
	e.packetReady = true

	e.logger.Debugw("gcm: packet initialized", "sci", sci, "pn", pn)
	return nil
}

// AddAuth appends one AAD byte. It returns ErrNoPacket if PacketInit has
// not been called, ErrSealed if AAD has already been sealed, and
// ErrLengthOverflow if the AAD bit-count would exceed 32 bits.
func (e *Engine) AddAuth(b byte) error {
	if !e.packetReady {
		return ErrNoPacket
	}
	if e.aadSealed {
		return ErrSealed
	}
	if err := checkBitLength(e.alenBytes + 1); err != nil {
		return err
	}

	e.aadAcc[e.aadIdx] = b
	e.aadIdx++
	e.alenBytes++

	if e.aadIdx == 16 {
		e.x = gf128.Mul(e.x.XOR(block128.FromBytes(e.aadAcc[:])), e.h)
		e.aadIdx = 0
	}
	return nil
}

// AuthFinalize closes the AAD region, flushing any partial final block
// zero-padded to 16 bytes. It is idempotent: calling it again after AAD is
// already sealed is a no-op. It returns ErrNoPacket if PacketInit has not
// been called.
func (e *Engine) AuthFinalize() error {
	if !e.packetReady {
		return ErrNoPacket
	}
	if e.aadSealed {
		return nil
	}

	if e.aadIdx > 0 {
		block := block128.ZeroPadded(e.aadAcc[:], e.aadIdx)
		e.x = gf128.Mul(e.x.XOR(block), e.h)
		e.aadIdx = 0
	}
	e.aadSealed = true
	return nil
}

// Encrypt produces one block of ciphertext from size bytes of plaintext
// (1..=16) and folds the ciphertext into the authentication tag. Bytes
// [size:16] of the returned block are not meaningful when size < 16.
func (e *Engine) Encrypt(p block128.Block128, size int) (block128.Block128, error) {
	return e.cryptAndFold(p, size, true)
}

// Decrypt is the mirror of Encrypt: it produces one block of plaintext
// from size bytes of ciphertext and folds the ciphertext into the
// authentication tag.
func (e *Engine) Decrypt(c block128.Block128, size int) (block128.Block128, error) {
	return e.cryptAndFold(c, size, false)
}

func (e *Engine) cryptAndFold(in block128.Block128, size int, encrypting bool) (block128.Block128, error) {
	var zero block128.Block128
	if !e.packetReady {
		return zero, ErrNoPacket
	}
	if size < 1 || size > 16 {
		return zero, ErrInvalidSize
	}
	if err := checkBitLength(e.plenBytes + uint64(size)); err != nil {
		return zero, err
	}
	if !e.aadSealed {
		if err := e.AuthFinalize(); err != nil {
			return zero, err
		}
	}

	e.ctr = e.ctr.IncrementU32(1)
	eki := block128.Block128(aesref.Encrypt(e.ks, [16]byte(e.ctr)))

	out := in.XOR(eki)

	var cipherForAuth block128.Block128
	if encrypting {
		cipherForAuth = out
	} else {
		cipherForAuth = in
	}
	if size < 16 {
		cipherForAuth = block128.ZeroPadded(cipherForAuth[:], size)
	}
	e.x = gf128.Mul(e.x.XOR(cipherForAuth), e.h)

	e.plenBytes += uint64(size)
	return out, nil
}

// GetTag finalizes GHASH with the length block and returns the 128-bit
// authentication tag X XOR EK0.
func (e *Engine) GetTag() (block128.Block128, error) {
	var zero block128.Block128
	if !e.packetReady {
		return zero, ErrNoPacket
	}
	if !e.aadSealed {
		if err := e.AuthFinalize(); err != nil {
			return zero, err
		}
	}

	var length block128.Block128
	putU32(length[4:8], uint32(e.alenBytes*8))
	putU32(length[12:16], uint32(e.plenBytes*8))

	e.x = gf128.Mul(e.x.XOR(length), e.h)
	tag := e.x.XOR(e.ek0)

	e.logger.Debugw("gcm: tag finalized", "alen_bits", e.alenBytes*8, "plen_bits", e.plenBytes*8)
	return tag, nil
}

func checkBitLength(bytesCount uint64) error {
	if bytesCount > math.MaxUint32/8 {
		return ErrLengthOverflow
	}
	return nil
}

func putU32(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}
