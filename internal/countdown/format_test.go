package countdown

import "testing"

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{9, "00:09"},
		{60, "01:00"},
		{25 * 60, "25:00"},
		{25*60 - 1, "24:59"},
		{180 * 60, "180:00"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.in); got != tc.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSnapshotProgress(t *testing.T) {
	s := Snapshot{TotalSeconds: 100, SecondsLeft: 25}
	if got := s.Progress(); got != 0.75 {
		t.Fatalf("progress = %v, want 0.75", got)
	}
	if got := (Snapshot{}).Progress(); got != 0 {
		t.Fatalf("progress of empty snapshot = %v", got)
	}
}

func TestParseModeAndLabels(t *testing.T) {
	for raw, want := range map[string]Mode{"focus": ModeFocus, " Break ": ModeRest, "rest": ModeRest, "work": ModeFocus} {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseMode("nap"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if StateIdle.Label() != "Ready" || StateExpired.Label() != "Expired" {
		t.Fatalf("unexpected labels: %s %s", StateIdle.Label(), StateExpired.Label())
	}
	if ModeFocus.Other() != ModeRest || ModeRest.Other() != ModeFocus {
		t.Fatal("unexpected mode toggle")
	}
}
