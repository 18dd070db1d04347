package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/pomod/internal/countdown"
)

func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", raw)
	}
}

func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", "pomod"))
}

// OpenFile returns a logger appending to path. The TUI owns stdout, so the
// interactive program logs here instead.
func OpenFile(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

// ControllerListener logs countdown transitions. Ticks that only move the
// clock are logged at debug.
func ControllerListener(logger *slog.Logger) func(countdown.Event) {
	return func(ev countdown.Event) {
		attrs := []any{
			slog.String("event", string(ev.Type)),
			slog.String("mode", string(ev.Snapshot.Mode)),
			slog.String("state", string(ev.Snapshot.State)),
			slog.Int("seconds_left", ev.Snapshot.SecondsLeft),
		}
		switch ev.Type {
		case countdown.EventComplete:
			if ev.Completion != nil {
				attrs = append(attrs,
					slog.String("completion_id", ev.Completion.ID),
					slog.String("next_mode", string(ev.Completion.Next)),
				)
			}
			logger.Info("countdown completed", attrs...)
		case countdown.EventMode:
			logger.Info("countdown mode switched", attrs...)
		default:
			if ev.Snapshot.Running {
				logger.Debug("countdown tick", attrs...)
				return
			}
			logger.Info("countdown changed", attrs...)
		}
	}
}
