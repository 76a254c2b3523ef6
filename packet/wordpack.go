// Package packet implements the simulator-facing glue: it marshals the
// word-packed arrays the verification harness hands over into the logical
// byte order the gcm engine expects, then drives one packet's worth of
// authentication and encryption/decryption through it.
package packet

// UnpackWords16 converts four 32-bit little-endian words, delivered in the
// left-to-right byte-reversed layout of the glue contract, into the logical
// 16-byte big-endian order the core expects. Word j holds logical bytes
// [15-4j .. 12-4j], with the word's low byte being logical byte 15-4j.
func UnpackWords16(words [4]uint32) [16]byte {
	var out [16]byte
	for j, w := range words {
		for shift := 0; shift < 4; shift++ {
			out[15-(4*j+shift)] = byte(w >> (8 * shift))
		}
	}
	return out
}

// PackWords16 is the inverse of UnpackWords16: it takes logical big-endian
// bytes and reassembles the four word-packed, byte-reversed 32-bit words.
func PackWords16(logical [16]byte) [4]uint32 {
	var words [4]uint32
	for j := range words {
		var w uint32
		for shift := 0; shift < 4; shift++ {
			w |= uint32(logical[15-(4*j+shift)]) << (8 * shift)
		}
		words[j] = w
	}
	return words
}

// UnpackSCI combines the two 32-bit words the glue delivers for the SCI
// into a single 64-bit value: loWord is bits 31..0, hiWord is bits 63..32.
// Unlike UnpackWords16, this is a plain little-endian word concatenation,
// not a byte-reversed pack.
func UnpackSCI(loWord, hiWord uint32) uint64 {
	return uint64(loWord) | uint64(hiWord)<<32
}
