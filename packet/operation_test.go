package packet_test

import (
	"encoding/hex"
	"testing"

	"github.com/cybroslabs/macsec-gcm-ref/gcm"
	"github.com/cybroslabs/macsec-gcm-ref/packet"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func mustKey16(t *testing.T, s string) [16]byte {
	t.Helper()
	b := mustHex(t, s)
	require.Len(t, b, 16)
	var out [16]byte
	copy(out[:], b)
	return out
}

func TestAesHKeyMatchesGHASHSubkey(t *testing.T) {
	// With an all-zero key and input the output is the GHASH subkey H.
	var key, in [16]byte
	out := packet.AesHKey(key, in)
	require.Equal(t, mustHex(t, "66e94bd4ef8a2c3b884cfa59ca342b2e"), out[:])
}

func TestOperationAuthOnly(t *testing.T) {
	// 16 bytes of AAD, no plaintext, auth_only set.
	key := mustKey16(t, "feffe9928665731c6d6a8f9467308308")
	aad := mustHex(t, "feedfacedeadbeeffeedfacedeadbeef")

	e := gcm.New()
	e.SetKey(key)

	out, err := packet.Operation(e, 0xcafebabefacedbad, 0xdecaf888, true, 0, 16, 0, true, aad)
	require.NoError(t, err)
	require.Len(t, out, 32)
	require.Equal(t, aad, out[:16])
	require.Equal(t, mustHex(t, "54df474f4e71a9ef8a09bf30da7b1a92"), out[16:])
}

func TestOperationAuthOnlyIgnoresEncFlag(t *testing.T) {
	// auth_only=1 must produce the same output regardless of enc, and the
	// auth_size/enc_size split within the auth-only region must not
	// affect the tag: all of it is folded into AAD as one 16-byte block.
	key := mustKey16(t, "feffe9928665731c6d6a8f9467308308")
	data := mustHex(t, "feedfacedeadbeeffeedfacedeadbeef")

	run := func(enc bool) []byte {
		e := gcm.New()
		e.SetKey(key)
		out, err := packet.Operation(e, 0xcafebabefacedbad, 0xdecaf888, true, 0, 4, 12, enc, data)
		require.NoError(t, err)
		return out
	}

	withEnc := run(true)
	withDec := run(false)
	require.Equal(t, withEnc, withDec)
	require.Equal(t, data, withEnc[:16])
	require.Equal(t, mustHex(t, "54df474f4e71a9ef8a09bf30da7b1a92"), withEnc[16:])
}

func TestOperationEncryptPartialFinalBlock(t *testing.T) {
	// Partial final block through the packet-level glue: 20 bytes authenticated
	// prefix, 60 bytes encrypted (final block only 12 bytes).
	key := mustKey16(t, "feffe9928665731c6d6a8f9467308308")
	aad := mustHex(t, "feedfacedeadbeeffeedfacedeadbeefabaddad2")
	pt := mustHex(t, "d9313225f88406e5a55909c5aff5269a86a7a9538534f7da1e4c303d2a318a728c3c0c95156809539fcf0e2429a6b525416aedbf5a0de6a57a637b39")
	wantCT := mustHex(t, "42831ec2217774244b7221b784d0d49ce3aa212fbc02a4e005c17e2389aca12eb1d514b2d466931ccd8f6a5acc84aa05eba30b739a0aac65fd58e091")
	wantTag := mustHex(t, "dcf76add425bb01160981ad33973d755")

	in := append(append([]byte(nil), aad...), pt...)

	e := gcm.New()
	e.SetKey(key)
	out, err := packet.Operation(e, 0xcafebabefacedbad, 0xdecaf888, false, 0, len(aad), len(pt), true, in)
	require.NoError(t, err)
	require.Len(t, out, len(aad)+len(pt)+16)
	require.Equal(t, aad, out[:len(aad)])
	require.Equal(t, wantCT, out[len(aad):len(aad)+len(pt)])
	require.Equal(t, wantTag, out[len(aad)+len(pt):])
}

func TestOperationDecryptRecoversPlaintext(t *testing.T) {
	// Feed the ciphertext from the encrypt case back with enc=0.
	key := mustKey16(t, "feffe9928665731c6d6a8f9467308308")
	aad := mustHex(t, "feedfacedeadbeeffeedfacedeadbeefabaddad2")
	ct := mustHex(t, "42831ec2217774244b7221b784d0d49ce3aa212fbc02a4e005c17e2389aca12eb1d514b2d466931ccd8f6a5acc84aa05eba30b739a0aac65fd58e091")
	wantPT := mustHex(t, "d9313225f88406e5a55909c5aff5269a86a7a9538534f7da1e4c303d2a318a728c3c0c95156809539fcf0e2429a6b525416aedbf5a0de6a57a637b39")
	wantTag := mustHex(t, "dcf76add425bb01160981ad33973d755")

	in := append(append([]byte(nil), aad...), ct...)

	e := gcm.New()
	e.SetKey(key)
	out, err := packet.Operation(e, 0xcafebabefacedbad, 0xdecaf888, false, 0, len(aad), len(ct), false, in)
	require.NoError(t, err)
	require.Equal(t, wantPT, out[len(aad):len(aad)+len(wantPT)])
	require.Equal(t, wantTag, out[len(aad)+len(ct):])
}

func TestOperationUnauthenticatedPrefixIsCopiedUntouched(t *testing.T) {
	key := mustKey16(t, "feffe9928665731c6d6a8f9467308308")
	prefix := mustHex(t, "aabbccdd")
	aad := mustHex(t, "feedfacedeadbeeffeedfacedeadbeef")

	in := append(append([]byte(nil), prefix...), aad...)

	e := gcm.New()
	e.SetKey(key)
	out, err := packet.Operation(e, 0xcafebabefacedbad, 0xdecaf888, true, len(prefix), len(aad), 0, true, in)
	require.NoError(t, err)
	require.Equal(t, prefix, out[:len(prefix)])
	require.Equal(t, aad, out[len(prefix):len(prefix)+len(aad)])
}

func TestOperationRejectsWrongInputLength(t *testing.T) {
	key := mustKey16(t, "feffe9928665731c6d6a8f9467308308")
	e := gcm.New()
	e.SetKey(key)

	_, err := packet.Operation(e, 0, 0, false, 0, 4, 4, true, make([]byte, 7))
	require.ErrorIs(t, err, gcm.ErrInvalidSize)
}
