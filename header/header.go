// Package header defines the packed record that describes a bootable image
// in non-volatile storage.
//
// The header is flashed immediately after the image it describes, so the
// image body plus the header's checksum field form one contiguous block that
// a CRC can validate in a single pass. Storage is assumed to be NOR-like:
// individual bits can be cleared at any time but only a sector erase can set
// them again. Every mutable field in the header is therefore a one-way
// latch, and the attempt budget is encoded so that consuming an attempt only
// ever clears bits.
//
// On-storage layout (part of the external flash contract):
//
//	byte 0..2   checksum, 24-bit, most significant byte first
//	byte 3      version
//	byte 4..6   image length in bytes, 24-bit little-endian, header excluded
//	byte 7      status byte, see below
//
// The checksum is stored big-endian on purpose: the CRC is computed
// MSB-first, so an intact image followed by its checksum in that byte order
// divides to a remainder of exactly zero.
//
// Status byte:
//
//	bit 0       notValidated: 1 until the checksum has been verified OK
//	bit 1       notInvalid:   1 until the checksum has been found bad
//	bit 2       notSucceeded: 1 until the image reports a healthy boot
//	bit 3       notFailed:    1 until the image disqualifies itself
//	bit 4..7    attempts: starts 0b1111, one bit shifted out per failed try
package header

import (
	"fmt"
	"math/bits"
)

// Size is the on-storage size of a header in bytes.
const Size = 8

// StatusOffset is the offset of the status byte within the header. It is
// the only byte the switcher ever writes back.
const StatusOffset = 7

// MaxLength is the largest image an on-storage length field can describe.
const MaxLength = 1<<24 - 1

// MaxAttempts is the boot attempt budget of a freshly flashed image.
const MaxAttempts = 4

const (
	bitNotValidated = 1 << 0
	bitNotInvalid   = 1 << 1
	bitNotSucceeded = 1 << 2
	bitNotFailed    = 1 << 3

	attemptsShift = 4
	attemptsMask  = 0x0f
)

// Header is a decoded image header. The status byte is kept unexported so
// that latches can only move in the "happened" direction: there is no API
// that sets a cleared bit.
type Header struct {
	Checksum uint32
	Version  uint8
	Length   uint32

	status byte
}

// New returns the header for a freshly flashed image: every latch armed and
// the full attempt budget available.
func New(version uint8, length, checksum uint32) (Header, error) {
	if length > MaxLength {
		return Header{}, fmt.Errorf("image length %d exceeds 24-bit field", length)
	}
	if checksum > 0xffffff {
		return Header{}, fmt.Errorf("checksum %#x exceeds 24-bit field", checksum)
	}

	return Header{
		Checksum: checksum,
		Version:  version,
		Length:   length,
		status:   0xff,
	}, nil
}

// Unmarshal decodes a header from its on-storage representation.
func Unmarshal(b []byte) (Header, error) {
	if len(b) < Size {
		return Header{}, fmt.Errorf("header needs %d bytes, got %d", Size, len(b))
	}

	return Header{
		Checksum: uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]),
		Version:  b[3],
		Length:   uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16,
		status:   b[7],
	}, nil
}

// Marshal encodes the header into its on-storage representation.
func (h Header) Marshal() [Size]byte {
	return [Size]byte{
		byte(h.Checksum >> 16),
		byte(h.Checksum >> 8),
		byte(h.Checksum),
		h.Version,
		byte(h.Length),
		byte(h.Length >> 8),
		byte(h.Length >> 16),
		h.status,
	}
}

// Status returns the raw status byte.
func (h Header) Status() byte {
	return h.status
}

// Validated reports whether the image checksum has been verified good.
func (h Header) Validated() bool {
	return h.status&bitNotValidated == 0
}

// Invalid reports whether the image checksum has been found bad.
func (h Header) Invalid() bool {
	return h.status&bitNotInvalid == 0
}

// Succeeded reports whether the image has ever reported a healthy boot.
func (h Header) Succeeded() bool {
	return h.status&bitNotSucceeded == 0
}

// Failed reports whether the image has disqualified itself.
func (h Header) Failed() bool {
	return h.status&bitNotFailed == 0
}

// LatchValid records that the checksum verified good. Idempotent, one-way.
func (h *Header) LatchValid() {
	h.status &^= bitNotValidated
}

// LatchInvalid records that the checksum verified bad. Idempotent, one-way.
func (h *Header) LatchInvalid() {
	h.status &^= bitNotInvalid
}

// LatchSuccess records a healthy boot. Idempotent, one-way.
func (h *Header) LatchSuccess() {
	h.status &^= bitNotSucceeded
}

// LatchFailure permanently disqualifies the image. Idempotent, one-way.
func (h *Header) LatchFailure() {
	h.status &^= bitNotFailed
}

// AttemptsLeft returns the number of boot attempts still available.
func (h Header) AttemptsLeft() int {
	return bits.OnesCount8(h.status >> attemptsShift)
}

// Exhausted reports whether the attempt budget is spent.
func (h Header) Exhausted() bool {
	return h.status>>attemptsShift == 0
}

// ConsumeAttempt burns one unit of the attempt budget by shifting the
// attempt bits left and dropping the overflow. The shift only turns set
// bits into cleared ones, which is the only transition the storage allows
// without an erase.
func (h *Header) ConsumeAttempt() {
	attempts := (h.status >> attemptsShift) << 1 & attemptsMask
	h.status = attempts<<attemptsShift | h.status&attemptsMask
}
