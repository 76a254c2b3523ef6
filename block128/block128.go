// Package block128 implements the 16-byte big-endian value used
// throughout the AES-GCM reference engine: bit 0 is the MSB of byte 0,
// bit 127 is the LSB of byte 15.
package block128

import "encoding/binary"

// Block128 is a fixed-size 16-byte value. It never grows or shrinks.
type Block128 [16]byte

// XOR returns the byte-wise XOR of b and other (field addition in GF(2^128)).
func (b Block128) XOR(other Block128) Block128 {
	var z Block128
	for i := range z {
		z[i] = b[i] ^ other[i]
	}
	return z
}

// IncrementU32 treats the last four bytes as a big-endian uint32 and adds
// amount to them modulo 2^32. The leading 12 bytes are untouched.
func (b Block128) IncrementU32(amount uint32) Block128 {
	z := b
	ctr := binary.BigEndian.Uint32(z[12:16])
	binary.BigEndian.PutUint32(z[12:16], ctr+amount)
	return z
}

// ShiftRight1 shifts the whole block right by one bit: bit i becomes bit
// i+1, and bit 0 becomes 0. The carry ripples from byte 0 toward byte 15.
func (b Block128) ShiftRight1() Block128 {
	var z Block128
	var carry byte
	for i := 0; i < 16; i++ {
		z[i] = (b[i] >> 1) | (carry << 7)
		carry = b[i] & 0x01
	}
	return z
}

// Bit returns the bit at index i, where index 0 is the MSB of byte 0.
func (b Block128) Bit(i int) byte {
	return (b[i/8] >> (7 - uint(i%8))) & 0x01
}

// Bytes returns the block's raw bytes as a slice (aliases the array's storage
// is not possible for a value receiver, so this always copies).
func (b Block128) Bytes() []byte {
	out := make([]byte, 16)
	copy(out, b[:])
	return out
}

// FromBytes builds a Block128 from a byte slice of exactly 16 bytes.
func FromBytes(src []byte) Block128 {
	var b Block128
	copy(b[:], src)
	return b
}

// ZeroPadded builds a Block128 from src, zero-filling any bytes beyond
// len(src) when size < 16. Only the first size bytes of src are read.
func ZeroPadded(src []byte, size int) Block128 {
	var b Block128
	copy(b[:size], src[:size])
	return b
}
