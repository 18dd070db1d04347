package update

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/pomod/internal/countdown"
	"github.com/sandeepkv93/pomod/internal/notify"
	"github.com/sandeepkv93/pomod/internal/storage"
)

func (m Model) handleTimerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.StartPause:
		if m.Timer.Snapshot().Running {
			return m.pauseTimer()
		}
		return m.startTimer()
	case m.Keys.Reset:
		return m.resetTimer(), nil
	case m.Keys.ToggleMode:
		return m.switchMode(m.Timer.Mode().Other())
	case m.Keys.Focus:
		return m.switchMode(countdown.ModeFocus)
	case m.Keys.Rest:
		return m.switchMode(countdown.ModeRest)
	}
	return m, nil
}

func (m Model) startTimer() (Model, tea.Cmd) {
	h, started := m.Timer.Start()
	if !started {
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s running", modeName(m.Timer.Mode()))}
	return m, tea.Batch(m.tickCmd(h), m.runSpinner.Tick)
}

func (m Model) pauseTimer() (Model, tea.Cmd) {
	before, _ := m.Timer.LastCompletion()
	m.Timer.Pause()
	if after, ok := m.Timer.LastCompletion(); ok && after.ID != before.ID {
		// Paused at the deadline: the controller completed the run instead.
		return m.onCompletion()
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s paused", modeName(m.Timer.Mode()))}
	return m, nil
}

func (m Model) resetTimer() Model {
	m.Timer.Reset()
	m.Status = StatusBar{Text: fmt.Sprintf("%s reset", modeName(m.Timer.Mode()))}
	return m
}

func (m Model) switchMode(mode countdown.Mode) (Model, tea.Cmd) {
	if err := m.Timer.SwitchMode(mode); err != nil {
		if errors.Is(err, countdown.ErrModeUnavailable) {
			m.Status = StatusBar{Text: "single-mode timer has no rest mode", IsError: true}
			return m, nil
		}
		return m.fail(err), nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s ready", modeName(mode))}
	return m, nil
}

func (m Model) configure(minutes int) (Model, tea.Cmd) {
	if err := m.Timer.Configure(minutes * 60); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	mode := m.Timer.Mode()
	m.Status = StatusBar{Text: fmt.Sprintf("%s duration set to %d min", modeName(mode), minutes)}
	key := storage.KeyFocusMinutes
	if mode == countdown.ModeRest {
		key = storage.KeyRestMinutes
	}
	return m, m.persistCmd(func(ctx context.Context, repo storage.Repository) error {
		return storage.SaveMinutes(ctx, repo, key, minutes)
	})
}

func (m Model) onTick(msg TickMsg) (Model, tea.Cmd) {
	if msg.Handle == 0 || msg.Handle != m.Timer.Handle() {
		return m, nil
	}
	m.Timer.Tick(msg.Handle)
	if m.Timer.Handle() == msg.Handle {
		return m, m.tickCmd(msg.Handle)
	}
	return m.onCompletion()
}

func (m Model) onCompletion() (Model, tea.Cmd) {
	done, ok := m.Timer.LastCompletion()
	if !ok {
		return m, nil
	}
	if done.Mode == countdown.ModeFocus {
		m.Completed++
	}

	title, body, level := completionText(done, m.Timer.DualMode())
	m.Status = StatusBar{Text: body}
	m.Toast = &Toast{ID: done.ID, Title: title, Body: body, Level: level, At: done.At}
	if m.alerts != nil {
		alert := notify.Alert{ID: done.ID, Title: title, Body: body, Level: level, At: done.At}
		if err := m.alerts.Dispatch(alert); err != nil {
			m.logger.Warn("dispatch completion alert", slog.String("error", err.Error()))
		}
	}
	id := done.ID
	return m, tea.Tick(m.toastDuration, func(time.Time) tea.Msg { return ClearToastMsg{ID: id} })
}

// completionText picks the toast wording. A finished focus block is a success;
// the end of a rest is only informational.
func completionText(done countdown.Completion, dual bool) (string, string, notify.Level) {
	switch {
	case !dual:
		return "Time's up", "countdown finished; press space to run it again", notify.LevelSuccess
	case done.Mode == countdown.ModeFocus:
		return "Cycle complete", "cycle complete! take a short break; rest is ready", notify.LevelSuccess
	default:
		return "Rest over", "rest complete; press f for the next focus block", notify.LevelInfo
	}
}

func (m Model) tickCmd(h countdown.Handle) tea.Cmd {
	return tea.Tick(m.Timer.TickInterval(), func(time.Time) tea.Msg { return TickMsg{Handle: h} })
}

func modeName(mode countdown.Mode) string {
	if mode == countdown.ModeRest {
		return "rest"
	}
	return "focus"
}
