package flash

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewSim_StartsErased(t *testing.T) {
	s := NewSim(16)

	buf := make([]byte, 16)
	_, err := s.ReadAt(buf, 0)
	require.NoError(t, err)

	for _, b := range buf {
		require.Equal(t, byte(0xff), b)
	}
}

func Test_Sim_ClearBitsOnlyClears(t *testing.T) {
	s := NewSim(4)

	require.NoError(t, s.ClearBits(0, []byte{0x0f, 0xf0}))
	require.NoError(t, s.ClearBits(0, []byte{0x33, 0x33}))

	buf := make([]byte, 2)
	_, err := s.ReadAt(buf, 0)
	require.NoError(t, err)

	require.Equal(t, byte(0x0f&0x33), buf[0])
	require.Equal(t, byte(0xf0&0x33), buf[1])
	require.Equal(t, 2, s.Writes())
}

func Test_Sim_BoundsChecked(t *testing.T) {
	s := NewSim(4)

	require.Error(t, s.ClearBits(3, []byte{0, 0}))
	require.Error(t, s.ClearBits(-1, []byte{0}))

	_, err := s.ReadAt(make([]byte, 1), 5)
	require.Error(t, err)

	// short read at the edge behaves like io.ReaderAt
	n, err := s.ReadAt(make([]byte, 8), 2)
	require.Equal(t, 2, n)
	require.Equal(t, io.EOF, err)
}

func Test_Load_CopiesItsInput(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	s := Load(src)
	src[0] = 0xaa

	buf := make([]byte, 1)
	_, err := s.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, byte(1), buf[0])
	require.Equal(t, int64(4), s.Size())
}
