// Package prng implements the engine's deterministic randomness source: a
// ChaCha20 block function (Bernstein's original "expand 32-byte k"
// construction with a 64-bit nonce and 64-bit counter, not the IETF
// 96-bit-nonce/32-bit-counter variant) and a uniform-integer generator built
// on top of it by rejection sampling.
package prng

// chacha20 constants spelling "expand 32-byte k" as four little-endian words.
var chachaConstants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// Block computes one 16-word ChaCha20 keystream block from a 256-bit key, a
// 64-bit nonce and a 64-bit block counter.
func Block(key [8]uint32, nonce, counter uint64) [16]uint32 {
	var x [4][4]uint32
	x[0] = chachaConstants
	copy(x[1][:], key[0:4])
	copy(x[2][:], key[4:8])
	x[3] = [4]uint32{
		uint32(counter), uint32(counter >> 32),
		uint32(nonce), uint32(nonce >> 32),
	}
	input := x

	for i := 0; i < 10; i++ {
		quarterRound(&x)
		x[1] = rotateWords(x[1], 1)
		x[2] = rotateWords(x[2], 2)
		x[3] = rotateWords(x[3], 3)

		quarterRound(&x)
		x[1] = rotateWords(x[1], 3)
		x[2] = rotateWords(x[2], 2)
		x[3] = rotateWords(x[3], 1)
	}

	var out [16]uint32
	for row := 0; row < 4; row++ {
		for lane := 0; lane < 4; lane++ {
			out[row*4+lane] = x[row][lane] + input[row][lane]
		}
	}
	return out
}

// quarterRound runs one SIMD-style quarter round across all four lanes of
// the 4x4 state simultaneously (a "column round" when the rows are aligned
// with the matrix columns, a "diagonal round" once rotateWords has shuffled
// the lanes).
func quarterRound(x *[4][4]uint32) {
	addRows(&x[0], x[1])
	x[3] = rotl32Each(xorRows(x[3], x[0]), 16)

	addRows(&x[2], x[3])
	x[1] = rotl32Each(xorRows(x[1], x[2]), 12)

	addRows(&x[0], x[1])
	x[3] = rotl32Each(xorRows(x[3], x[0]), 8)

	addRows(&x[2], x[3])
	x[1] = rotl32Each(xorRows(x[1], x[2]), 7)
}

func addRows(a *[4]uint32, b [4]uint32) {
	for i := range a {
		a[i] += b[i]
	}
}

func xorRows(a, b [4]uint32) [4]uint32 {
	var out [4]uint32
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func rotl32Each(a [4]uint32, n uint32) [4]uint32 {
	var out [4]uint32
	for i := range a {
		out[i] = a[i]<<n | a[i]>>(32-n)
	}
	return out
}

// rotateWords rotates the four lanes left by n: result[i] = a[(i+n) mod 4].
// n=1 is the column->diagonal shuffle for row 1, n=2 for row 2, n=3 for row 3,
// mirroring the SIMD shuffle-by-immediate used in the reference implementation.
func rotateWords(a [4]uint32, n int) [4]uint32 {
	var out [4]uint32
	for i := range a {
		out[i] = a[(i+n)%4]
	}
	return out
}
