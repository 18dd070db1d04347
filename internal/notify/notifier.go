package notify

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
)

type Alert struct {
	ID    string
	Title string
	Body  string
	Level Level
	At    time.Time
}

// Sink receives alerts on the dispatcher goroutine.
type Sink interface {
	Send(Alert) error
}

type SinkFunc func(Alert) error

func (f SinkFunc) Send(a Alert) error { return f(a) }

// DesktopSink shells out to the platform notification tool.
type DesktopSink struct{}

func (DesktopSink) Send(a Alert) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", a.Title, a.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(a.Body), escapeAppleScript(a.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// BellSink writes the terminal bell, the audible cue on completion.
type BellSink struct {
	W io.Writer
}

func (b BellSink) Send(Alert) error {
	if b.W == nil {
		return nil
	}
	_, err := io.WriteString(b.W, "\a")
	return err
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
