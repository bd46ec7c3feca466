package flash

import (
	"fmt"
	"io"
)

// Sim is a RAM-backed Memory with NOR semantics, used by tests and by the
// host tooling to manipulate bank files. A fresh Sim is fully erased
// (all bits set), so programming erased regions with ClearBits stores the
// data verbatim.
type Sim struct {
	buf    []byte
	writes int
}

// NewSim returns an erased simulated flash of the given size.
func NewSim(size int) *Sim {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0xff
	}
	return &Sim{buf: buf}
}

// Load returns a simulated flash initialized with a copy of b, typically a
// bank file read from disk.
func Load(b []byte) *Sim {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &Sim{buf: buf}
}

// ReadAt implements io.ReaderAt.
func (s *Sim) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(s.buf)) {
		return 0, fmt.Errorf("read at %#x outside flash of %#x bytes", off, len(s.buf))
	}
	n := copy(p, s.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ClearBits implements Memory.
func (s *Sim) ClearBits(off int64, p []byte) error {
	if off < 0 || off+int64(len(p)) > int64(len(s.buf)) {
		return fmt.Errorf("write at %#x+%d outside flash of %#x bytes", off, len(p), len(s.buf))
	}
	for i, b := range p {
		s.buf[off+int64(i)] &= b
	}
	s.writes++
	return nil
}

// Size implements Memory.
func (s *Sim) Size() int64 {
	return int64(len(s.buf))
}

// Writes returns how many ClearBits calls the Sim has absorbed. Tests use
// it to assert that repeated selection passes do not touch storage again.
func (s *Sim) Writes() int {
	return s.writes
}

// Bytes returns the current flash content. The slice aliases the Sim's
// internal buffer.
func (s *Sim) Bytes() []byte {
	return s.buf
}
