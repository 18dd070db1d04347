package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/pomod/internal/countdown"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.FocusMinutes != 25 || cfg.RestMinutes != 5 {
		t.Fatalf("unexpected duration defaults: %+v", cfg)
	}
	if cfg.SingleMode || cfg.DesktopNotifications || !cfg.Bell {
		t.Fatalf("unexpected toggle defaults: %+v", cfg)
	}
	if cfg.TickInterval != time.Second || cfg.ToastSeconds != 4 || cfg.NotifyBuffer != 8 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if filepath.Base(cfg.DBPath) != "pomod.db" || filepath.Base(cfg.LogPath) != "pomod.log" {
		t.Fatalf("unexpected path defaults: %+v", cfg)
	}
	if cfg.FocusSeconds() != 1500 || cfg.RestSeconds() != 300 {
		t.Fatalf("unexpected seconds: focus=%d rest=%d", cfg.FocusSeconds(), cfg.RestSeconds())
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("POMOD_FOCUS_MINUTES", "50")
	t.Setenv("POMOD_REST_MINUTES", "10")
	t.Setenv("POMOD_SINGLE_MODE", "yes")
	t.Setenv("POMOD_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("POMOD_BELL", "off")
	t.Setenv("POMOD_TOAST_SECONDS", "9")
	t.Setenv("POMOD_NOTIFY_BUFFER", "16")
	t.Setenv("POMOD_DB", "state/custom.db")
	t.Setenv("POMOD_LOG", "state/custom.log")
	t.Setenv("POMOD_LOG_LEVEL", "DEBUG")

	cfg := FromEnv(DefaultRuntimeConfig())
	if cfg.FocusMinutes != 50 || cfg.RestMinutes != 10 {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if !cfg.SingleMode || !cfg.DesktopNotifications || cfg.Bell {
		t.Fatalf("unexpected toggles: %+v", cfg)
	}
	if cfg.ToastSeconds != 9 || cfg.NotifyBuffer != 16 {
		t.Fatalf("unexpected numeric overrides: %+v", cfg)
	}
	if cfg.DBPath != "state/custom.db" || cfg.LogPath != "state/custom.log" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
	if cfg.RestSeconds() != 0 {
		t.Fatalf("single mode must have no rest seconds, got %d", cfg.RestSeconds())
	}
}

func TestRuntimeConfigFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("POMOD_FOCUS_MINUTES", "0")
	t.Setenv("POMOD_REST_MINUTES", "abc")
	t.Setenv("POMOD_BELL", "maybe")

	cfg := FromEnv(DefaultRuntimeConfig())
	if cfg.FocusMinutes != 25 || cfg.RestMinutes != 5 || !cfg.Bell {
		t.Fatalf("invalid env values must be ignored: %+v", cfg)
	}
}

func TestLoadFileMissingReturnsBase(t *testing.T) {
	base := DefaultRuntimeConfig()
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), base)
	if err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	if cfg != base {
		t.Fatalf("expected base config, got %+v", cfg)
	}
}

func TestLoadFileAppliesValidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomod.yaml")
	body := "focus_minutes: 45\nrest_minutes: 500\nsingle_mode: true\nbell: false\ntick_millis: 250\nlog_level: Warn\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path, DefaultRuntimeConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FocusMinutes != 45 || cfg.RestMinutes != 5 {
		t.Fatalf("expected focus 45 and rest unchanged, got %+v", cfg)
	}
	if !cfg.SingleMode || cfg.Bell || cfg.TickInterval != 250*time.Millisecond || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected file overrides: %+v", cfg)
	}
}

func TestLoadFileRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("focus_minutes: [1, 2"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path, DefaultRuntimeConfig()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomod.yaml")
	want := DefaultRuntimeConfig()
	want.FocusMinutes = 30
	want.DesktopNotifications = true
	if err := SaveFile(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadFile(path, DefaultRuntimeConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pomod", "config.yaml")
	if err := SaveFile(path, DefaultRuntimeConfig()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadFile(path, RuntimeConfig{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.FocusMinutes != 25 || !got.Bell {
		t.Fatalf("unexpected loaded config: %+v", got)
	}
}

func TestParseMinutes(t *testing.T) {
	if v, err := ParseMinutes(" 25 "); err != nil || v != 25 {
		t.Fatalf("ParseMinutes(25) = %d, %v", v, err)
	}
	for _, raw := range []string{"", "0", "-3", "181", "ten", "2.5"} {
		if _, err := ParseMinutes(raw); !errors.Is(err, countdown.ErrInvalidDuration) {
			t.Fatalf("ParseMinutes(%q): expected ErrInvalidDuration, got %v", raw, err)
		}
	}
}
