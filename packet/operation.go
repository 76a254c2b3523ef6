package packet

import (
	"github.com/cybroslabs/macsec-gcm-ref/aesref"
	"github.com/cybroslabs/macsec-gcm-ref/block128"
	"github.com/cybroslabs/macsec-gcm-ref/gcm"
)

// Operation drives one full packet through an already-keyed engine: it
// primes the per-packet state from (sci, pn), then authenticates and
// encrypts/decrypts the packet regions exactly as the glue contract
// describes, and appends the 16-byte tag.
//
// inPkt must be exactly authStart+authSize+encSize bytes. The returned
// slice is authStart+authSize+encSize+16 bytes: the transformed packet
// followed by the tag, in byte order 0..15.
func Operation(e *gcm.Engine, sci uint64, pn uint32, authOnly bool, authStart, authSize, encSize int, enc bool, inPkt []byte) ([]byte, error) {
	want := authStart + authSize + encSize
	if authStart < 0 || authSize < 0 || encSize < 0 || len(inPkt) != want {
		return nil, gcm.ErrInvalidSize
	}

	if err := e.PacketInit(sci, pn); err != nil {
		return nil, err
	}

	out := make([]byte, want+16)
	copy(out[:authStart], inPkt[:authStart])

	authRegionEnd := authStart + authSize
	if authOnly {
		authRegionEnd += encSize
	}
	for i := authStart; i < authRegionEnd; i++ {
		if err := e.AddAuth(inPkt[i]); err != nil {
			return nil, err
		}
		out[i] = inPkt[i]
	}

	if !authOnly {
		off := authRegionEnd
		for off < want {
			chunk := want - off
			if chunk > 16 {
				chunk = 16
			}
			var in block128.Block128
			copy(in[:], inPkt[off:off+chunk])

			var (
				result block128.Block128
				err    error
			)
			if enc {
				result, err = e.Encrypt(in, chunk)
			} else {
				result, err = e.Decrypt(in, chunk)
			}
			if err != nil {
				return nil, err
			}
			copy(out[off:off+chunk], result[:chunk])
			off += chunk
		}
	}

	tag, err := e.GetTag()
	if err != nil {
		return nil, err
	}
	copy(out[want:], tag[:])
	return out, nil
}

// AesHKey exposes a single AES-128 forward block encryption, independent of
// any Engine's persisted state, for harnesses that want to precompute H (or
// any other known-answer block) without going through packet_init.
func AesHKey(key, input [16]byte) [16]byte {
	ks := aesref.ExpandKey(key)
	return aesref.Encrypt(ks, input)
}

// AesHKeyWords is AesHKey with the word-packed layout the simulator glue
// delivers: key and input arrive as four 32-bit words each, and the result
// is packed back the same way.
func AesHKeyWords(keyWords, inputWords [4]uint32) [4]uint32 {
	out := AesHKey(UnpackWords16(keyWords), UnpackWords16(inputWords))
	return PackWords16(out)
}
