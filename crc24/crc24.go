// Package crc24 implements the 24-bit cyclic redundancy check used to
// validate firmware images.
//
// The remainder is computed MSB-first with no reflection, no initial value
// and no final XOR. The polynomial is a deployment parameter; Default
// matches the one the flashing tooling uses.
package crc24

// Params holds the CRC configuration shared between the image switcher and
// whatever tool produced the image bank.
type Params struct {
	// Poly is the generator polynomial in normal representation.
	Poly uint32
}

// Default is the polynomial our image banks are built with.
var Default = Params{Poly: 0x5D6DCB}

// Checksum returns the CRC remainder of data padded with three zero bytes,
// i.e. the value to be stored right after the image so that the combined
// block divides cleanly.
func (p Params) Checksum(data []byte) uint32 {
	return p.remainder(data, true)
}

// Valid reports whether data, which must already include the three trailing
// checksum bytes, passes the CRC. Intact data leaves a remainder of zero.
func (p Params) Valid(data []byte) bool {
	return p.remainder(data, false) == 0
}

// The running remainder lives in the three most significant bytes of crc;
// the least significant byte is the holding area for the next message byte.
func (p Params) remainder(data []byte, pad bool) uint32 {
	var crc uint32

	feed := func(b byte) {
		crc |= uint32(b)
		for i := 0; i < 8; i++ {
			carry := crc&(1<<31) != 0
			crc <<= 1
			if carry {
				crc ^= p.Poly << 8
			}
		}
	}

	for _, b := range data {
		feed(b)
	}

	if pad {
		feed(0)
		feed(0)
		feed(0)
	}

	return crc >> 8
}
