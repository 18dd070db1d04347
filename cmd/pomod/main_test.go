package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/pomod/internal/config"
	"github.com/sandeepkv93/pomod/internal/countdown"
	"github.com/sandeepkv93/pomod/internal/countdown/countdowntest"
	"github.com/sandeepkv93/pomod/internal/notify"
	"github.com/sandeepkv93/pomod/internal/storage"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestApplyFlagsRejectsInvalidDurations(t *testing.T) {
	cases := []struct {
		name string
		fv   flagValues
	}{
		{name: "focus too large", fv: flagValues{set: map[string]bool{"focus": true}, focus: 500}},
		{name: "focus negative", fv: flagValues{set: map[string]bool{"focus": true}, focus: -5}},
		{name: "focus zero", fv: flagValues{set: map[string]bool{"focus": true}, focus: 0}},
		{name: "rest too large", fv: flagValues{set: map[string]bool{"rest": true}, rest: 181}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultRuntimeConfig()
			_, err := applyFlags(&cfg, tc.fv)
			if !errors.Is(err, countdown.ErrInvalidDuration) {
				t.Fatalf("expected invalid duration error, got %v", err)
			}
			if cfg.FocusMinutes != 25 || cfg.RestMinutes != 5 {
				t.Fatalf("config changed on error: %+v", cfg)
			}
		})
	}
}

func TestApplyFlagsAppliesSetValues(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	explicit, err := applyFlags(&cfg, flagValues{
		set:     map[string]bool{"focus": true, "rest": true},
		db:      "/tmp/x.db",
		focus:   50,
		rest:    10,
		single:  true,
		verbose: true,
	})
	if err != nil {
		t.Fatalf("apply flags: %v", err)
	}
	if !explicit.focus || !explicit.rest {
		t.Fatalf("expected both durations explicit, got %+v", explicit)
	}
	if cfg.FocusMinutes != 50 || cfg.RestMinutes != 10 || !cfg.SingleMode || cfg.LogLevel != "debug" || cfg.DBPath != "/tmp/x.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	// Unset duration flags leave the config alone.
	cfg = config.DefaultRuntimeConfig()
	explicit, err = applyFlags(&cfg, flagValues{set: map[string]bool{}})
	if err != nil || explicit.focus || cfg.FocusMinutes != 25 {
		t.Fatalf("unexpected result for unset flags: %+v %+v %v", explicit, cfg, err)
	}
}

func TestApplyPreferencesRespectsExplicitFlags(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	cfg.FocusMinutes = 50
	applyPreferences(&cfg, storage.Preferences{FocusMinutes: 40, RestMinutes: 7}, explicitFlags{focus: true})
	if cfg.FocusMinutes != 50 || cfg.RestMinutes != 7 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	applyPreferences(&cfg, storage.Preferences{RestMinutes: 999}, explicitFlags{})
	if cfg.RestMinutes != 7 {
		t.Fatalf("out of range stored minutes must be ignored, got %d", cfg.RestMinutes)
	}
}

func TestSinksWriteBellToGivenWriter(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	var bell bytes.Buffer
	out := sinks(cfg, &bell)
	if len(out) != 1 {
		t.Fatalf("expected only the bell sink, got %d", len(out))
	}
	if err := out[0].Send(notify.Alert{}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if bell.String() != "\a" {
		t.Fatalf("expected bell on writer, got %q", bell.String())
	}

	cfg.Bell = false
	if out := sinks(cfg, &bell); len(out) != 0 {
		t.Fatalf("expected no sinks, got %d", len(out))
	}
}

func TestRunPlainExecutesCommands(t *testing.T) {
	clock := countdowntest.NewManualClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctrl, err := countdown.New(countdown.Options{FocusSeconds: 120, RestSeconds: 60, Clock: clock})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	alerts := notify.NewDispatcher(4, nil)
	alerts.Start()
	defer alerts.Stop()

	in := strings.NewReader("pause\nbogus\nset 1\ntheme dark\n")
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		runPlain(ctx, ctrl, alerts, in, &out, slog.New(slog.DiscardHandler))
	}()

	waitFor(t, func() bool { return strings.Contains(out.String(), "handler_missing") })
	cancel()
	<-done

	got := out.String()
	want := []string{
		"02:00 Focus Ready",
		"02:00 Focus Running",
		"02:00 Focus Paused",
		"error: unknown_command: unsupported command: bogus",
		"01:00 Focus Ready",
		"error: handler_missing: theme handler not configured",
	}
	last := 0
	for _, line := range want {
		idx := strings.Index(got[last:], line)
		if idx < 0 {
			t.Fatalf("expected %q after offset %d in output:\n%s", line, last, got)
		}
		last += idx + len(line)
	}
	if snap := ctrl.Snapshot(); snap.SecondsLeft != 60 || snap.State != countdown.StateIdle {
		t.Fatalf("unexpected final snapshot: %+v", snap)
	}
}

func TestRunPlainCompletesAndPausesOnCancel(t *testing.T) {
	clock := countdowntest.NewManualClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctrl, err := countdown.New(countdown.Options{FocusSeconds: 60, RestSeconds: 30, Clock: clock})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	var mu sync.Mutex
	var delivered []notify.Alert
	alerts := notify.NewDispatcher(4, nil, notify.SinkFunc(func(a notify.Alert) error {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, a)
		return nil
	}))
	alerts.Start()

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		runPlain(ctx, ctrl, alerts, strings.NewReader(""), &out, slog.New(slog.DiscardHandler))
	}()

	waitFor(t, func() bool { return clock.Tickers() == 1 })
	clock.Advance(60 * time.Second)
	waitFor(t, func() bool { return strings.Contains(out.String(), "00:30 Rest Ready") })
	if !strings.Contains(out.String(), "00:00 Focus complete") {
		t.Fatalf("expected focus completion line, output:\n%s", out.String())
	}

	cancel()
	<-done
	alerts.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 || delivered[0].Body != "Focus complete" {
		t.Fatalf("expected one focus alert, got %+v", delivered)
	}
	if snap := ctrl.Snapshot(); snap.Running || snap.Mode != countdown.ModeRest {
		t.Fatalf("unexpected final snapshot: %+v", snap)
	}
}
