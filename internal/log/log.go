// Package log wires up the engine's diagnostic logger. It never touches
// the UCI protocol stream: "uciok", "bestmove" and "info ..." lines go
// straight to stdout from cmd/enginecli, independent of whatever
// level this logger is configured at.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger writing to stderr at the given level ("debug",
// "info", "warn", "error", or any other level zapcore.ParseLevel accepts;
// an unrecognized level falls back to "info"). Keeping
// diagnostics on stderr leaves stdout free for UCI protocol text.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// Nop returns a logger that discards everything, for a caller that wants
// a non-nil *zap.Logger without configuring one. New has no "none" level;
// New("none") falls back to "info".
func Nop() *zap.Logger {
	return zap.NewNop()
}
