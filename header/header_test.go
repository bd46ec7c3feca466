package header

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func freshHeader(t *testing.T) Header {
	t.Helper()
	h, err := New(3, 0x1234, 0xabcdef)
	require.NoError(t, err)
	return h
}

func Test_New_StartsFullyArmed(t *testing.T) {
	h := freshHeader(t)

	require.False(t, h.Validated())
	require.False(t, h.Invalid())
	require.False(t, h.Succeeded())
	require.False(t, h.Failed())
	require.False(t, h.Exhausted())
	require.Equal(t, MaxAttempts, h.AttemptsLeft())
	require.Equal(t, byte(0xff), h.Status())
}

func Test_New_RejectsOversizedFields(t *testing.T) {
	_, err := New(0, 1<<24, 0)
	require.Error(t, err)

	_, err = New(0, 0, 1<<24)
	require.Error(t, err)
}

func Test_Header_MarshalLayout(t *testing.T) {
	h := freshHeader(t)
	raw := h.Marshal()

	// checksum MSB first
	require.Equal(t, byte(0xab), raw[0])
	require.Equal(t, byte(0xcd), raw[1])
	require.Equal(t, byte(0xef), raw[2])
	// version
	require.Equal(t, byte(3), raw[3])
	// length, little-endian
	require.Equal(t, byte(0x34), raw[4])
	require.Equal(t, byte(0x12), raw[5])
	require.Equal(t, byte(0x00), raw[6])
	// status byte, everything armed
	require.Equal(t, byte(0xff), raw[7])
}

func Test_Header_MarshalRoundTrip(t *testing.T) {
	h := freshHeader(t)
	h.LatchValid()
	h.ConsumeAttempt()

	raw := h.Marshal()
	back, err := Unmarshal(raw[:])
	require.NoError(t, err)
	require.Equal(t, h, back)
}

func Test_Unmarshal_RejectsShortBuffers(t *testing.T) {
	_, err := Unmarshal(make([]byte, Size-1))
	require.Error(t, err)
}

func Test_Header_LatchesAreOneWayAndIdempotent(t *testing.T) {
	h := freshHeader(t)

	h.LatchValid()
	require.True(t, h.Validated())
	h.LatchValid()
	require.True(t, h.Validated())

	h.LatchInvalid()
	h.LatchSuccess()
	h.LatchFailure()
	require.True(t, h.Invalid())
	require.True(t, h.Succeeded())
	require.True(t, h.Failed())

	// no API exists to re-arm any of them
	require.Equal(t, byte(0xf0), h.Status())
}

func Test_Header_ConsumeAttemptShiftsTheBudget(t *testing.T) {
	h := freshHeader(t)

	for want := MaxAttempts - 1; want >= 0; want-- {
		h.ConsumeAttempt()
		require.Equal(t, want, h.AttemptsLeft())
	}

	require.True(t, h.Exhausted())

	// consuming past exhaustion stays at zero
	h.ConsumeAttempt()
	require.True(t, h.Exhausted())
	require.Equal(t, 0, h.AttemptsLeft())
}

func Test_Header_ConsumeAttemptLeavesLatchesAlone(t *testing.T) {
	h := freshHeader(t)
	h.LatchValid()

	for i := 0; i < MaxAttempts; i++ {
		h.ConsumeAttempt()
	}

	require.True(t, h.Validated())
	require.False(t, h.Invalid())
	require.False(t, h.Succeeded())
	require.False(t, h.Failed())
}

// every reachable mutation must only ever clear bits, that is the storage
// contract
func Test_Header_MutationsOnlyClearBits(t *testing.T) {
	muts := map[string]func(*Header){
		"LatchValid":     (*Header).LatchValid,
		"LatchInvalid":   (*Header).LatchInvalid,
		"LatchSuccess":   (*Header).LatchSuccess,
		"LatchFailure":   (*Header).LatchFailure,
		"ConsumeAttempt": (*Header).ConsumeAttempt,
	}

	for name, mut := range muts {
		h := freshHeader(t)
		for i := 0; i < 8; i++ {
			before := h.Status()
			mut(&h)
			after := h.Status()
			require.Equal(t, before&after, after, "%s set a bit: %08b -> %08b", name, before, after)
		}
	}
}
