package commands

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// verbosityToLevel maps -v counts to zap levels:
//
//	0    -> WarnLevel
//	1    -> InfoLevel
//	2+   -> DebugLevel
func verbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// newLogger returns a human-readable console logger writing to w. Results go
// to stdout; logs never do.
func newLogger(w io.Writer, verbosity int) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		verbosityToLevel(verbosity),
	)
	return zap.New(core).Named("dbscan")
}
