package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/pomod/internal/countdown"
	"github.com/sandeepkv93/pomod/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Editor.Active {
			return m.handleEditorKey(typed)
		}

		switch keyStr {
		case m.Keys.Palette:
			return m.openPalette(), nil
		case m.Keys.Edit:
			return m.openEditor(), nil
		case m.Keys.Theme:
			return m.toggleTheme()
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleTimerKey(typed)
	case TickMsg:
		return m.onTick(typed)
	case spinner.TickMsg:
		if !m.Timer.Snapshot().Running {
			return m, nil
		}
		var cmd tea.Cmd
		m.runSpinner, cmd = m.runSpinner.Update(typed)
		return m, cmd
	case SwitchModeMsg:
		return m.switchMode(typed.Mode)
	case ConfigureMsg:
		return m.configure(typed.Minutes)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case ClearToastMsg:
		if m.Toast != nil && m.Toast.ID == typed.ID {
			m.Toast = nil
		}
		return m, nil
	case AppErrorMsg:
		return m.fail(typed.Err), nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	notification := ""
	if m.Toast != nil {
		notification = views.RenderNotification(string(m.Toast.Level), m.Toast.Body)
	}

	return views.RenderApp(views.AppData{
		Theme:        m.Theme,
		Header:       fmt.Sprintf("pomod | %s | theme: %s %s", m.Timer.Mode().Label(), m.Theme, m.Theme.Icon()),
		LeftPane:     m.renderTimerView(),
		RightPane:    strings.TrimSpace(views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()) + "\n" + m.renderHelpIfVisible()),
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer:       m.footer(),
	})
}

func (m Model) renderTimerView() string {
	snap := m.Timer.Snapshot()
	spin := ""
	if snap.Running {
		spin = m.runSpinner.View()
	}
	editor := ""
	if m.Editor.Active {
		editor = m.durationInput.View()
	}
	progress := snap.Progress()
	return views.RenderTimerPanel(views.TimerPanelData{
		Theme:        m.Theme,
		Mode:         string(snap.Mode),
		Clock:        countdown.FormatClock(snap.SecondsLeft),
		State:        string(snap.State),
		StateLabel:   snap.State.Label(),
		ProgressView: m.timerProgress.ViewAs(progress),
		ProgressPct:  int(progress * 100),
		SpinnerView:  spin,
		DualMode:     snap.DualMode,
		FocusMinutes: m.Timer.ModeSeconds(countdown.ModeFocus) / 60,
		RestMinutes:  m.Timer.ModeSeconds(countdown.ModeRest) / 60,
		Completed:    m.Completed,
		EditorView:   editor,
	})
}

func (m Model) footer() string {
	if m.Timer.DualMode() {
		return fmt.Sprintf("keys: space start/pause | %s reset | %s mode | %s set | %s theme | %s cmd | %s help | %s quit",
			m.Keys.Reset, m.Keys.ToggleMode, m.Keys.Edit, m.Keys.Theme, m.Keys.Palette, m.Keys.Help, m.Keys.Quit)
	}
	return fmt.Sprintf("keys: space start/pause | %s reset | %s set | %s theme | %s cmd | %s help | %s quit",
		m.Keys.Reset, m.Keys.Edit, m.Keys.Theme, m.Keys.Palette, m.Keys.Help, m.Keys.Quit)
}
