package aesref_test

import (
	"encoding/hex"
	"testing"

	"github.com/cybroslabs/macsec-gcm-ref/aesref"
	"github.com/stretchr/testify/require"
)

func decodeBlock(t *testing.T, s string) [16]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 16)
	var out [16]byte
	copy(out[:], b)
	return out
}

func TestFIPS197KnownAnswer(t *testing.T) {
	// FIPS-197 Appendix C.1: AES-128.
	key := decodeBlock(t, "000102030405060708090a0b0c0d0e0f")
	plain := decodeBlock(t, "00112233445566778899aabbccddeeff")
	want := decodeBlock(t, "69c4e0d86a7b0430d8cdb78070b4c55a")

	ks := aesref.ExpandKey(key)
	got := aesref.Encrypt(ks, plain)
	require.Equal(t, want, got)
}

func TestZeroKeyZeroBlockIsGHashSubkey(t *testing.T) {
	// NIST GCM test case 1/2: H = AES_0(0^128).
	var zeroKey, zeroBlock [16]byte
	want := decodeBlock(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")

	ks := aesref.ExpandKey(zeroKey)
	got := aesref.Encrypt(ks, zeroBlock)
	require.Equal(t, want, got)
}

func TestEncryptIsDeterministic(t *testing.T) {
	key := decodeBlock(t, "feffe9928665731c6d6a8f9467308308")
	in := decodeBlock(t, "cafebabefacedbaddecaf88800000001")
	ks := aesref.ExpandKey(key)

	a := aesref.Encrypt(ks, in)
	b := aesref.Encrypt(ks, in)
	require.Equal(t, a, b)
}
