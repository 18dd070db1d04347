package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/pomod/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.keyBindings() {
		plain = append(plain, fmt.Sprintf("- `%s` %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Theme:    m.Theme,
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) keyBindings() []KeyBinding {
	out := []KeyBinding{
		{Key: "space", Action: "start/pause timer"},
		{Key: m.Keys.Reset, Action: "reset timer"},
	}
	if m.Timer.DualMode() {
		out = append(out,
			KeyBinding{Key: m.Keys.ToggleMode, Action: "toggle focus/rest"},
			KeyBinding{Key: m.Keys.Focus + "/" + m.Keys.Rest, Action: "focus / rest mode"},
		)
	}
	return append(out,
		KeyBinding{Key: m.Keys.Edit, Action: "set duration (minutes)"},
		KeyBinding{Key: m.Keys.Theme, Action: "toggle light/dark theme"},
		KeyBinding{Key: m.Keys.Palette, Action: "open command palette"},
		KeyBinding{Key: m.Keys.Help, Action: "toggle help panel"},
		KeyBinding{Key: m.Keys.Quit, Action: "quit"},
	)
}

func (m Model) helpBindings() []key.Binding {
	kbs := m.keyBindings()
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
