// Package logging builds the zap loggers handed to the session and the CLI.
// The level comes from the --log-level flag or the BEZDYN_LOG_LEVEL
// environment variable. Valid levels: DEBUG, INFO, WARN, ERROR.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const EnvLevel = "BEZDYN_LOG_LEVEL"

// ParseLevel maps a level name to a zap level. Empty input defaults to INFO.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zapcore.DebugLevel, nil
	case "", "INFO":
		return zapcore.InfoLevel, nil
	case "WARN", "WARNING":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logging: unknown level %q", s)
	}
}

// LevelFromEnv returns the level named by BEZDYN_LOG_LEVEL, falling back to
// INFO when unset or malformed.
func LevelFromEnv() zapcore.Level {
	lvl, err := ParseLevel(os.Getenv(EnvLevel))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// New builds a console logger writing to stderr. An empty level defers to
// the environment.
func New(level string) (*zap.Logger, error) {
	lvl := LevelFromEnv()
	if level != "" {
		var err error
		if lvl, err = ParseLevel(level); err != nil {
			return nil, err
		}
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = lvl > zapcore.DebugLevel
	return cfg.Build()
}

// NewJSON builds a production logger for headless runs.
func NewJSON(level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func Nop() *zap.Logger {
	return zap.NewNop()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
