package switcher

import (
	"fmt"

	"github.com/wallera-computer/bootswitch/flash"
	"github.com/wallera-computer/bootswitch/header"
)

// Image binds a decoded header to its location in flash. The header sits
// immediately after the image body, so the body occupies
// [addr-Length, addr) and the entry point is addr-Length.
type Image struct {
	mem  flash.Memory
	addr int64
	hdr  header.Header
}

// Open reads and decodes the header stored at addr. The address comes from
// the platform's flash map; no assumption is made about what it points to
// beyond the header layout itself.
func Open(mem flash.Memory, addr int64) (*Image, error) {
	var buf [header.Size]byte

	if _, err := mem.ReadAt(buf[:], addr); err != nil {
		return nil, fmt.Errorf("read header at %#x: %w", addr, err)
	}

	hdr, err := header.Unmarshal(buf[:])
	if err != nil {
		return nil, fmt.Errorf("decode header at %#x: %w", addr, err)
	}

	return &Image{mem: mem, addr: addr, hdr: hdr}, nil
}

// Header returns a copy of the decoded header.
func (i *Image) Header() header.Header {
	return i.hdr
}

// Addr returns the flash offset of the header.
func (i *Image) Addr() int64 {
	return i.addr
}

// Start returns the flash offset of the image body, which is also its
// entry point.
func (i *Image) Start() int64 {
	return i.addr - int64(i.hdr.Length)
}

// MarkSuccess latches the image as having booted healthy. The running
// image calls this, through its own Open of the same header, as the first
// thing it does once it trusts itself. One-way and idempotent.
func (i *Image) MarkSuccess() error {
	i.hdr.LatchSuccess()
	return i.flushStatus()
}

// MarkFailure permanently withdraws the image from selection. One-way and
// idempotent.
func (i *Image) MarkFailure() error {
	i.hdr.LatchFailure()
	return i.flushStatus()
}

// checksumBlock reads the image body plus the three checksum bytes that
// open the header, the exact range the CRC must zero out over.
func (i *Image) checksumBlock() ([]byte, error) {
	start := i.Start()
	if start < 0 {
		return nil, fmt.Errorf("image length %d overruns start of flash", i.hdr.Length)
	}

	block := make([]byte, int64(i.hdr.Length)+3)
	if _, err := i.mem.ReadAt(block, start); err != nil {
		return nil, fmt.Errorf("read image body at %#x: %w", start, err)
	}

	return block, nil
}

// flushStatus writes the status byte back to flash. Every mutation the
// switcher performs only clears bits, so the AND-write either lands fully
// or leaves the previous state; both are consistent. Unchanged status is
// not written at all.
func (i *Image) flushStatus() error {
	var cur [1]byte
	if _, err := i.mem.ReadAt(cur[:], i.addr+header.StatusOffset); err != nil {
		return err
	}
	if cur[0]&i.hdr.Status() == cur[0] {
		return nil
	}
	return i.mem.ClearBits(i.addr+header.StatusOffset, []byte{i.hdr.Status()})
}
