package crc24

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Params_ChecksumKnownAnswers(t *testing.T) {
	require.Equal(t, uint32(0), Default.Checksum(nil))
	require.Equal(t, uint32(0x5d6dcb), Default.Checksum([]byte{1}))
	require.Equal(t, uint32(0x629d29), Default.Checksum([]byte{1, 2, 3, 4}))
	require.Equal(t, uint32(0xa7629e), Default.Checksum([]byte("ABCD")))
}

func Test_Params_ValidAcceptsIntactBlocks(t *testing.T) {
	require.True(t, Default.Valid(nil))
	require.True(t, Default.Valid([]byte{1, 0x5d, 0x6d, 0xcb}))
	require.True(t, Default.Valid([]byte{1, 2, 3, 4, 0x62, 0x9d, 0x29}))
	require.True(t, Default.Valid([]byte{'A', 'B', 'C', 'D', 0xa7, 0x62, 0x9e}))
}

func Test_Params_ValidRejectsCorruption(t *testing.T) {
	require.False(t, Default.Valid([]byte{1, 2, 3, 5, 0x62, 0x9d, 0x29}))

	// single bit flips anywhere in body or checksum
	block := []byte{'A', 'B', 'C', 'D', 0xa7, 0x62, 0x9e}
	for i := range block {
		for bit := 0; bit < 8; bit++ {
			corrupt := make([]byte, len(block))
			copy(corrupt, block)
			corrupt[i] ^= 1 << bit
			require.False(t, Default.Valid(corrupt), "byte %d bit %d", i, bit)
		}
	}
}

func Test_Params_ChecksumRoundTrip(t *testing.T) {
	body := []byte("some image body that is not aligned to anything in particular")
	sum := Default.Checksum(body)

	// the checksum is appended most significant byte first, the same
	// order the header codec stores it in
	block := append(append([]byte{}, body...), byte(sum>>16), byte(sum>>8), byte(sum))
	require.True(t, Default.Valid(block))
}
