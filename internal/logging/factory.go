package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// Supported backend names.
const (
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"
)

// New builds a JSON logger for the named backend writing to w.
// Level names follow the backend's own parser ("debug", "info", "warn", "error").
func New(backend, level string, w io.Writer) (Logger, error) {
	switch backend {
	case BackendSlog, "":
		var lvl slog.Level
		if level != "" {
			if err := lvl.UnmarshalText([]byte(level)); err != nil {
				return nil, fmt.Errorf("slog level %q: %w", level, err)
			}
		}
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogLogger(slog.New(h)), nil
	case BackendZerolog:
		lvl := zerolog.InfoLevel
		if level != "" {
			parsed, err := zerolog.ParseLevel(level)
			if err != nil {
				return nil, fmt.Errorf("zerolog level %q: %w", level, err)
			}
			lvl = parsed
		}
		return NewZerologLogger(zerolog.New(w).Level(lvl).With().Timestamp().Logger()), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return NewZerologLogger(zerolog.Nop())
}
