package switcher

import "go.uber.org/zap"

// Option configures a Switcher.
type Option func(*Switcher)

// WithVerifier replaces the default CRC-24 verifier, e.g. to use different
// polynomial parameters.
func WithVerifier(v Verifier) Option {
	return func(s *Switcher) {
		s.verifier = v
	}
}

// WithJump supplies the platform primitive that transfers control into an
// image. Without it Boot stops short with ErrNoJump, which is what host
// builds and tests want.
func WithJump(jump JumpFunc) Option {
	return func(s *Switcher) {
		s.jump = jump
	}
}

// WithLogger routes switcher logging somewhere. The default is a nop
// logger; a first-stage loader usually has no console to talk to.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Switcher) {
		s.log = l
	}
}
