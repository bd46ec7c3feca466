// Package flash abstracts the non-volatile memory holding image banks.
//
// The storage model is NOR-like: reads are random-access, but a write can
// only clear bits that are currently set. Turning a 0 back into a 1 takes a
// sector erase, which is outside the scope of the boot path. The Memory
// interface encodes this directly: the only write primitive is ClearBits,
// which ANDs new data into what is already there. Callers that respect the
// interface cannot express an illegal transition, and a power cut in the
// middle of a write leaves every bit either in its old or its new state,
// never anything else.
package flash

import "io"

// Memory is a window into bit-clear-only non-volatile storage.
type Memory interface {
	io.ReaderAt

	// ClearBits ANDs p into storage starting at off. Bits that are set
	// both in storage and in p stay set; everything else ends up cleared.
	ClearBits(off int64, p []byte) error

	// Size returns the length of the window in bytes.
	Size() int64
}
