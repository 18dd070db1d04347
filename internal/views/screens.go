package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TimerPanelData struct {
	Theme        Theme
	Mode         string
	Clock        string
	State        string
	StateLabel   string
	ProgressView string
	ProgressPct  int
	SpinnerView  string
	DualMode     bool
	FocusMinutes int
	RestMinutes  int
	Completed    int
	EditorView   string
}

type HelpPanelData struct {
	Theme    Theme
	Bindings []string
	HelpView string
}

func RenderTimerPanel(data TimerPanelData) string {
	p := paletteFor(data.Theme)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("mode: %s\n", strings.ToUpper(data.Mode)))
	b.WriteString("\n")
	b.WriteString(p.clock.Render(data.Clock) + "\n")
	b.WriteString(stateStyle(p, data.State).Render(data.StateLabel))
	if data.SpinnerView != "" {
		b.WriteString(" " + data.SpinnerView)
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %d%%\n", data.ProgressView, data.ProgressPct))
	if data.DualMode {
		b.WriteString(p.muted.Render(fmt.Sprintf("focus %dm | rest %dm | completed %d", data.FocusMinutes, data.RestMinutes, data.Completed)) + "\n")
	} else {
		b.WriteString(p.muted.Render(fmt.Sprintf("duration %dm | completed %d", data.FocusMinutes, data.Completed)) + "\n")
	}
	if data.EditorView != "" {
		b.WriteString("\n" + data.EditorView + "\n")
		b.WriteString(p.muted.Render("[enter] apply [esc] cancel") + "\n")
	}
	return strings.TrimSpace(b.String())
}

func stateStyle(p palette, state string) lipgloss.Style {
	switch state {
	case "running":
		return p.running
	case "paused":
		return p.paused
	case "expired":
		return p.expired
	default:
		return p.muted
	}
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command:\n%s\n[enter] run [esc] close", inputView)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	md := "## keys\n\n" + strings.Join(data.Bindings, "\n")
	return fmt.Sprintf("help:\n%s\n%s", RenderMarkdown(md, data.Theme), data.HelpView)
}
