package views

import "github.com/charmbracelet/lipgloss"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(raw string) (Theme, bool) {
	switch Theme(raw) {
	case ThemeLight, ThemeDark:
		return Theme(raw), true
	default:
		return "", false
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Icon mirrors the toggle button: the icon shows the theme you would switch to.
func (t Theme) Icon() string {
	if t == ThemeDark {
		return "☀"
	}
	return "☾"
}

// DetectTheme picks the theme matching the terminal background.
func DetectTheme() Theme {
	if lipgloss.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

type palette struct {
	header  lipgloss.Style
	status  lipgloss.Style
	errText lipgloss.Style
	panel   lipgloss.Style
	footer  lipgloss.Style
	clock   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	expired lipgloss.Style
	muted   lipgloss.Style
	toast   lipgloss.Style
}

func newPalette(primary, accent, muted, success, warning, danger, border lipgloss.Color) palette {
	return palette{
		header:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		status:  lipgloss.NewStyle().Foreground(success),
		errText: lipgloss.NewStyle().Foreground(danger),
		panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		footer:  lipgloss.NewStyle().Foreground(muted),
		clock:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		running: lipgloss.NewStyle().Bold(true).Foreground(success),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(warning),
		expired: lipgloss.NewStyle().Bold(true).Foreground(danger),
		muted:   lipgloss.NewStyle().Foreground(muted),
		toast:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(accent).Padding(0, 1),
	}
}

var palettes = map[Theme]palette{
	ThemeDark:  newPalette("12", "205", "8", "10", "214", "9", "63"),
	ThemeLight: newPalette("25", "162", "244", "28", "130", "160", "61"),
}

func paletteFor(t Theme) palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeDark]
}
