// Package aesref is a from-scratch, software-only AES-128 implementation:
// key schedule and single-block forward encryption, bit-exact with
// FIPS-197. It intentionally does not call crypto/aes — see DESIGN.md.
package aesref

// Encrypt performs one AES-128 forward block encryption of in under ks.
func Encrypt(ks KeySchedule, in [16]byte) [16]byte {
	var state [4][4]byte
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			state[r][c] = in[4*c+r]
		}
	}

	addRoundKey(&state, ks.roundKeys[0])

	for round := 1; round < nr; round++ {
		subBytes(&state)
		shiftRows(&state)
		mixColumns(&state)
		addRoundKey(&state, ks.roundKeys[round])
	}

	subBytes(&state)
	shiftRows(&state)
	addRoundKey(&state, ks.roundKeys[nr])

	var out [16]byte
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[4*c+r] = state[r][c]
		}
	}
	return out
}

func addRoundKey(state *[4][4]byte, roundKey [16]byte) {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			state[r][c] = gadd(state[r][c], roundKey[4*c+r])
		}
	}
}

func subBytes(state *[4][4]byte) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			state[r][c] = sbox[state[r][c]]
		}
	}
}

func shiftRows(state *[4][4]byte) {
	for r := 1; r < 4; r++ {
		row := state[r]
		for c := 0; c < 4; c++ {
			state[r][c] = row[(c+r)%4]
		}
	}
}

func mixColumns(state *[4][4]byte) {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := state[0][c], state[1][c], state[2][c], state[3][c]
		state[0][c] = gmul(a0, 2) ^ gmul(a1, 3) ^ a2 ^ a3
		state[1][c] = a0 ^ gmul(a1, 2) ^ gmul(a2, 3) ^ a3
		state[2][c] = a0 ^ a1 ^ gmul(a2, 2) ^ gmul(a3, 3)
		state[3][c] = gmul(a0, 3) ^ a1 ^ a2 ^ gmul(a3, 2)
	}
}
