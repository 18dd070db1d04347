package update

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/pomod/internal/storage"
	"github.com/sandeepkv93/pomod/internal/views"
)

const persistTimeout = 2 * time.Second

// persistCmd runs a preference write off the update loop.
func (m Model) persistCmd(write func(ctx context.Context, repo storage.Repository) error) tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	repo := m.prefs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := write(ctx, repo); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("persist preference: %w", err)}
		}
		return nil
	}
}

func (m Model) toggleTheme() (Model, tea.Cmd) {
	return m.setTheme(m.Theme.Toggle())
}

func (m Model) setTheme(theme views.Theme) (Model, tea.Cmd) {
	m.Theme = theme
	m.Status = StatusBar{Text: fmt.Sprintf("theme: %s", theme)}
	return m, m.persistCmd(func(ctx context.Context, repo storage.Repository) error {
		return storage.SaveTheme(ctx, repo, string(theme))
	})
}

func (m Model) fail(err error) Model {
	m.LastError = err
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Error("app error", slog.String("error", err.Error()))
	}
	return m
}
