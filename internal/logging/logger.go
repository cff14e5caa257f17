package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where a session logs and how much.
type Options struct {
	Path    string // JSON log file, created with its directory
	Session string // attached to every entry
	Level   string // zap level name; empty means info
	Console bool   // mirror warnings and errors to stderr
}

// New builds the session logger. The TUI leaves Console off since it owns
// the terminal.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(file), level)
	if opts.Console {
		stderr := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), zapcore.WarnLevel)
		core = zapcore.NewTee(core, stderr)
	}

	return zap.New(core, zap.Fields(
		zap.String("session", opts.Session),
		zap.Int("pid", os.Getpid()),
	)), nil
}
