package update

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/pomod/internal/commands"
	"github.com/sandeepkv93/pomod/internal/views"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Set: func(a commands.SetArgs) (commands.Result, error) {
			m, follow = m.configure(a.Minutes)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Mode: func(a commands.ModeArgs) (commands.Result, error) {
			if !m.Timer.DualMode() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "single-mode timer has no rest mode"}
			}
			m, follow = m.switchMode(a.Mode)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			next := m.Theme.Toggle()
			if th, ok := views.ParseTheme(a.Name); ok {
				next = th
			}
			m, follow = m.setTheme(next)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Start: func() (commands.Result, error) {
			m, follow = m.startTimer()
			return commands.Result{Message: fmt.Sprintf("%s %s", modeName(m.Timer.Mode()), m.Timer.Snapshot().State)}, nil
		},
		Pause: func() (commands.Result, error) {
			m, follow = m.pauseTimer()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Reset: func() (commands.Result, error) {
			m = m.resetTimer()
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Warn("palette command failed", slog.String("input", raw), slog.String("error", err.Error()))
		return m, nil
	}
	if !m.Status.IsError {
		m.Status = StatusBar{Text: res.Message}
	}
	m.logger.Info("palette command", slog.String("input", raw))
	return m, follow
}
