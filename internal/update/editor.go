package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/pomod/internal/config"
)

func (m Model) openEditor() Model {
	m.Editor.Active = true
	m.Editor.Input = ""
	m.durationInput.SetValue("")
	m.durationInput.Focus()
	m.Status = StatusBar{Text: "enter " + modeName(m.Timer.Mode()) + " duration in minutes"}
	return m
}

func (m Model) closeEditor() Model {
	m.Editor.Active = false
	m.Editor.Input = ""
	m.durationInput.SetValue("")
	m.durationInput.Blur()
	return m
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closeEditor()
		m.Status = StatusBar{Text: "duration unchanged"}
		return m, nil
	case "enter":
		raw := m.durationInput.Value()
		m = m.closeEditor()
		minutes, err := config.ParseMinutes(raw)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		return m.configure(minutes)
	}
	if msg.Type == tea.KeyRunes {
		m.durationInput.SetValue(m.durationInput.Value() + string(msg.Runes))
		m.Editor.Input = m.durationInput.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.durationInput, cmd = m.durationInput.Update(msg)
	m.Editor.Input = m.durationInput.Value()
	return m, cmd
}
