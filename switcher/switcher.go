// Package switcher picks which of the images present in a bank may boot,
// and hands control over to it.
//
// The switcher runs before anything else on the system: no scheduler, no
// interrupts, nothing to fall back to if it picks wrong. All of its state
// lives in the image headers themselves, and every conclusion it reaches
// (checksum good, checksum bad, one more attempt burned) is latched into
// storage with bit-clear-only writes before control moves on. A power cut
// at any point leaves the headers either as they were or as they were
// about to be, so the next cycle simply resumes from whatever was latched.
package switcher

import (
	"errors"

	"go.uber.org/zap"

	"github.com/wallera-computer/bootswitch/crc24"
)

// ErrNoJump is returned by Boot when no platform jump primitive has been
// configured, which is the case everywhere except on the real target.
var ErrNoJump = errors.New("no jump primitive configured")

// Verifier validates an image body concatenated with its stored checksum
// bytes. crc24.Params satisfies it.
type Verifier interface {
	Valid(data []byte) bool
}

// JumpFunc transfers control to the image starting at the given flash
// offset, with the stack reset. It must not return. The platform supplies
// it, typically a closure adding the flash window's base address.
type JumpFunc func(entry int64)

// Switcher evaluates candidate images and boots the winner.
type Switcher struct {
	verifier Verifier
	jump     JumpFunc
	log      *zap.SugaredLogger
}

// New returns a Switcher. Without options it verifies with the default
// CRC-24 parameters, logs nowhere and cannot transfer control.
func New(opts ...Option) *Switcher {
	s := &Switcher{
		verifier: crc24.Default,
		log:      zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Select returns the image that should boot, or nil if none may.
//
// Every candidate is evaluated, not just the winner, so any validation
// verdicts reached along the way are latched for all of them. Calling
// Select again over the same bank neither re-verifies nor writes anything.
//
// Among several bootable candidates the highest version wins; equal
// versions fall back to the image placed higher in flash.
func (s *Switcher) Select(imgs ...*Image) *Image {
	var best *Image

	for _, img := range imgs {
		if img == nil {
			continue
		}
		if !s.bootable(img) {
			continue
		}
		if best == nil || newer(img, best) {
			best = img
		}
	}

	if best == nil {
		s.log.Warn("no bootable image")
	}

	return best
}

func newer(a, b *Image) bool {
	if a.hdr.Version != b.hdr.Version {
		return a.hdr.Version > b.hdr.Version
	}
	return a.addr > b.addr
}

// bootable applies the eligibility policy to one image:
//
//   - marked failed: never bootable again
//   - marked succeeded: bootable, no further questions
//   - marked invalid: never bootable again
//   - not yet validated: verify the checksum now, latch the verdict
//   - otherwise bootable while the attempt budget lasts
func (s *Switcher) bootable(img *Image) bool {
	h := &img.hdr

	if h.Failed() {
		s.log.Debugw("image marked failed", "addr", img.addr)
		return false
	}

	if h.Succeeded() {
		return true
	}

	if h.Invalid() {
		s.log.Debugw("image marked invalid", "addr", img.addr)
		return false
	}

	if !h.Validated() {
		ok, err := s.verify(img)
		if err != nil {
			// The body could not even be read; leave the latches
			// alone so a later cycle can try again.
			s.log.Errorw("cannot verify image", "addr", img.addr, "error", err)
			return false
		}

		if !ok {
			h.LatchInvalid()
			if err := img.flushStatus(); err != nil {
				s.log.Errorw("cannot latch invalid verdict", "addr", img.addr, "error", err)
			}
			s.log.Warnw("image checksum bad", "addr", img.addr, "version", h.Version)
			return false
		}

		h.LatchValid()
		if err := img.flushStatus(); err != nil {
			s.log.Errorw("cannot latch valid verdict", "addr", img.addr, "error", err)
		}
		s.log.Debugw("image checksum ok", "addr", img.addr, "version", h.Version)
	}

	if h.Exhausted() {
		s.log.Debugw("image out of boot attempts", "addr", img.addr)
		return false
	}

	return true
}

// verify runs the image body plus its stored checksum bytes through the
// configured verifier.
func (s *Switcher) verify(img *Image) (bool, error) {
	block, err := img.checksumBlock()
	if err != nil {
		return false, err
	}
	return s.verifier.Valid(block), nil
}

// Boot finalizes bookkeeping on the chosen image and transfers control to
// it. It does not return on success. A nil image is a no-op: the caller is
// expected to halt.
//
// An image that has never reported a successful boot pays one unit of its
// attempt budget up front. If it then comes up healthy it must latch its
// success bit itself; if it crashes first, the spent attempt is already in
// storage and the budget shrinks one cycle at a time until the image is
// excluded. Images that have succeeded before boot for free.
func (s *Switcher) Boot(img *Image) error {
	if img == nil {
		return nil
	}

	if !img.hdr.Succeeded() {
		img.hdr.ConsumeAttempt()
		if err := img.flushStatus(); err != nil {
			return err
		}
	}

	if s.jump == nil {
		return ErrNoJump
	}

	s.log.Infow("booting image",
		"entry", img.Start(),
		"version", img.hdr.Version,
		"attempts left", img.hdr.AttemptsLeft(),
	)

	s.jump(img.Start())

	// A JumpFunc that returns is a platform bug; there is nothing
	// meaningful left to do here.
	return errors.New("jump primitive returned")
}
