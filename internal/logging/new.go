package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Opts configures New.
type Opts struct {
	// Level is one of debug, info, warn, error or off. Empty means info.
	Level string
	// Console receives human-readable output. Nil means os.Stderr.
	Console io.Writer
	// File, when set, additionally receives JSON records.
	File io.Writer
}

// LevelOff disables logging entirely.
const LevelOff = "off"

// ParseLevel maps a level name to slog.Level. "off" is handled by New.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New builds the application logger: a zerolog console writer bridged into
// slog, optionally fanned out to a JSON file sink. Level "off" yields Discard.
func New(opts Opts) (Logger, error) {
	if strings.EqualFold(strings.TrimSpace(opts.Level), LevelOff) {
		return Discard(), nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: console, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}
	if opts.File != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.File, &slog.HandlerOptions{Level: level}))
	}

	return FromSlog(slog.New(slogmulti.Fanout(handlers...))), nil
}
