package log

import "go.uber.org/zap"

// Production returns a nop logger: a first-stage loader on release builds
// has no console to write to.
func Production(_ ...zap.Option) *zap.Logger {
	zap.ReplaceGlobals(zap.NewNop())

	return zap.L()
}

func Development(opts ...zap.Option) *zap.Logger {
	opts = append(opts, zap.WithCaller(true))
	l, err := zap.NewDevelopment(
		opts...,
	)

	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(l)

	return zap.L()
}
