package prng

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBlockVectors matches the published test vectors from
// draft-agl-tls-chacha20poly1305-04, decoding the key as 32 raw bytes
// 0x00..0x1f and the nonce as 8 raw bytes 0x00..0x07, both little-endian.
func TestBlockVectors(t *testing.T) {
	var keyBytes [32]byte
	for i := range keyBytes {
		keyBytes[i] = byte(i)
	}
	var key [8]uint32
	for i := 0; i < 8; i++ {
		key[i] = binary.LittleEndian.Uint32(keyBytes[i*4 : i*4+4])
	}

	var nonceBytes [8]byte
	for i := range nonceBytes {
		nonceBytes[i] = byte(i)
	}
	nonce := binary.LittleEndian.Uint64(nonceBytes[:])

	expected0 := [16]uint32{
		0x89a198f7, 0x69e695f1, 0xfb5f1082, 0x75b70b64,
		0xa39d577f, 0x93fc0216, 0x56ac01ec, 0xc1c35af8,
		0x7b54a434, 0x41463b73, 0x44c94230, 0x69174900,
		0x59bed305, 0xf1531cea, 0x5c151659, 0x1a24e82b,
	}
	expected1 := [16]uint32{
		0x9a8b0038, 0x9435bc26, 0x1744241e, 0x66de8a7c,
		0x2695de89, 0x58d98649, 0xe860fb89, 0xbdc92946,
		0x1ccb5a9a, 0x56be18c1, 0xa4b3b93e, 0x2ef872a4,
		0x78e7a709, 0x2e562b49, 0x880e13f7, 0xc731e0df,
	}

	assert.Equal(t, expected0, Block(key, nonce, 0))
	assert.Equal(t, expected1, Block(key, nonce, 1))
}
