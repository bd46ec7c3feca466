//go:build tamago

package flash

import (
	"fmt"
	"unsafe"
)

// Mapped is a Memory backed by a memory-mapped storage window, for targets
// where the image bank is execute-in-place NOR visible in the address
// space. Writes assume the controller has the window write-enabled and
// performs program operations as AND-writes, which is the native behavior
// of NOR program cycles.
type Mapped struct {
	base uintptr
	size int64
}

// NewMapped returns a Memory over [base, base+size).
func NewMapped(base uintptr, size int64) *Mapped {
	return &Mapped{base: base, size: size}
}

// ReadAt implements io.ReaderAt.
func (m *Mapped) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > m.size {
		return 0, fmt.Errorf("read at %#x+%d outside mapped window of %#x bytes", off, len(p), m.size)
	}
	for i := range p {
		p[i] = *(*byte)(unsafe.Pointer(m.base + uintptr(off) + uintptr(i)))
	}
	return len(p), nil
}

// ClearBits implements Memory.
func (m *Mapped) ClearBits(off int64, p []byte) error {
	if off < 0 || off+int64(len(p)) > m.size {
		return fmt.Errorf("write at %#x+%d outside mapped window of %#x bytes", off, len(p), m.size)
	}
	for i, b := range p {
		ptr := (*byte)(unsafe.Pointer(m.base + uintptr(off) + uintptr(i)))
		*ptr &= b
	}
	return nil
}

// Size implements Memory.
func (m *Mapped) Size() int64 {
	return m.size
}
