package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/pomod/internal/countdown"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", raw, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestControllerListenerLogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	listen := ControllerListener(logger)

	listen(countdown.Event{
		Type:     countdown.EventComplete,
		Snapshot: countdown.Snapshot{Mode: countdown.ModeFocus, State: countdown.StateExpired},
		Completion: &countdown.Completion{
			ID:   "c-1",
			Mode: countdown.ModeFocus,
			Next: countdown.ModeRest,
			At:   time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
		},
	})
	out := buf.String()
	for _, want := range []string{"countdown completed", "completion_id=c-1", "next_mode=rest", "service=pomod"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output: %s", want, out)
		}
	}
}

func TestControllerListenerTicksAreDebug(t *testing.T) {
	var buf bytes.Buffer
	listen := ControllerListener(New(&buf, slog.LevelInfo))
	listen(countdown.Event{Type: countdown.EventChange, Snapshot: countdown.Snapshot{Running: true, State: countdown.StateRunning}})
	if buf.Len() != 0 {
		t.Fatalf("running ticks must not log at info: %s", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pomod.log")
	logger, closer, err := OpenFile(path, slog.LevelDebug)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
