// Package gf128 implements GHASH's GF(2^128) multiplication under the GCM
// reduction polynomial x^128 + x^7 + x^2 + x + 1, in the bit-serial,
// reference form: auditability over speed.
package gf128

import "github.com/cybroslabs/macsec-gcm-ref/block128"

// reductionConstant is R in the standard GCM write-up: the reduction
// polynomial's low-order terms, placed in byte 0 because bit 0 is the MSB
// under this package's big-endian, bit-0-is-MSB convention.
var reductionConstant = block128.Block128{0xE1}

// Mul returns x·y in GF(2^128). It is total: every pair of 128-bit inputs
// produces a defined 128-bit output, with no failure modes.
func Mul(x, y block128.Block128) block128.Block128 {
	var z block128.Block128
	v := x

	for i := 0; i < 128; i++ {
		if y.Bit(i) == 1 {
			z = z.XOR(v)
		}

		lsb := v.Bit(127)
		v = v.ShiftRight1()
		if lsb == 1 {
			v = v.XOR(reductionConstant)
		}
	}

	return z
}
