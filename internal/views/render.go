package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme        Theme
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

func RenderApp(data AppData) string {
	p := paletteFor(data.Theme)
	left := p.panel.Width(44).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := p.panel.Width(52).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := p.status.Render(data.StatusLine)
	if data.StatusError {
		status = p.errText.Render(data.StatusLine)
	}

	lines := []string{
		p.header.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, p.toast.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, p.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, theme Theme) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "dark"
	if theme == ThemeLight {
		style = "light"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
