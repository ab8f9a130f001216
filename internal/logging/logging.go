// Package logging wraps zap in a package-level singleton, the same shape
// KurtSkinny-telegram-userbot's internal/infra/logger uses: an
// AtomicLevel-backed core rebuilt under a mutex, read through a lazily
// initialized global. Every package in this module that logs goes through
// here rather than building its own zap.Logger.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu       sync.Mutex
	log      *zap.Logger
	logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// EnvLevel is the environment variable that sets the default log level at
// process start, per spec.md §6: debug, info, warn, or error.
const EnvLevel = "TRAEGER_LOG_LEVEL"

func init() {
	if v := os.Getenv(EnvLevel); v != "" {
		SetLevel(v)
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func rebuildLocked() {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		logLevel,
	)
	if log != nil {
		_ = log.Sync()
	}
	log = zap.New(core, zap.AddCaller())
}

// SetLevel sets the process-wide log level. Unrecognized values fall back
// to info, matching the teacher's logger.Init.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(level) {
	case "debug":
		logLevel.SetLevel(zap.DebugLevel)
	case "warn", "warning":
		logLevel.SetLevel(zap.WarnLevel)
	case "error":
		logLevel.SetLevel(zap.ErrorLevel)
	default:
		logLevel.SetLevel(zap.InfoLevel)
	}
	rebuildLocked()
}

// L returns the shared zap.Logger, building it on first use.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		rebuildLocked()
	}
	return log
}
