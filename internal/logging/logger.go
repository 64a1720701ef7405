// Package logging provides zap logger construction for data2prompt.
//
// Diagnostics go to stderr so they never mix with document output written
// to stdout. The console format is the default for interactive use; JSON
// is available for log collection.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger for the given level and format.
//
// level is one of "debug", "info", "warn", "error". format is "console"
// or "json". Unknown values are rejected rather than silently defaulted
// so config typos surface immediately.
func New(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case "console":
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q (want console or json)", format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stderr())), lvl)
	return zap.New(core), nil
}

// Nop returns a logger that discards everything. Used in tests and when
// quiet mode is requested.
func Nop() *zap.Logger {
	return zap.NewNop()
}
