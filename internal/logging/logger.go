// Package logging defines the context-aware structured logger used across
// the server and its backends (zap for production, slog for development and
// tests).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "login succeeded", "username", name, "ip", ip)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// New builds a Logger writing to w. format is "zap" (JSON via zap), "json"
// or "text" (both via slog); level is debug, info, warn or error.
// The returned closer flushes buffered entries.
func New(w io.Writer, format, level string) (Logger, func() error, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	switch strings.ToLower(format) {
	case "zap", "":
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = "time"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), zapLevel(lvl))
		z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
		return NewZapLogger(z), z.Sync, nil
	case "json":
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogLogger(slog.New(h)), noopClose, nil
	case "text":
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogLogger(slog.New(h)), noopClose, nil
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func noopClose() error { return nil }

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if level == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

func zapLevel(l slog.Level) zapcore.Level {
	switch {
	case l <= slog.LevelDebug:
		return zapcore.DebugLevel
	case l <= slog.LevelInfo:
		return zapcore.InfoLevel
	case l <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
