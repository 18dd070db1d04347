package update

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/pomod/internal/countdown"
	"github.com/sandeepkv93/pomod/internal/notify"
	"github.com/sandeepkv93/pomod/internal/storage"
	"github.com/sandeepkv93/pomod/internal/views"
)

const defaultToastDuration = 4 * time.Second

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	StartPause string
	Reset      string
	ToggleMode string
	Focus      string
	Rest       string
	Edit       string
	Theme      string
	Palette    string
	Help       string
	Quit       string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type DurationEditorState struct {
	Active bool
	Input  string
}

type Toast struct {
	ID    string
	Title string
	Body  string
	Level notify.Level
	At    time.Time
}

// AlertDispatcher accepts completion alerts without blocking the update loop.
type AlertDispatcher interface {
	Dispatch(notify.Alert) error
}

type Deps struct {
	Timer         *countdown.Controller
	Prefs         storage.Repository
	Alerts        AlertDispatcher
	Logger        *slog.Logger
	Theme         views.Theme
	ToastDuration time.Duration
}

type Model struct {
	Timer       *countdown.Controller
	Theme       views.Theme
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Palette     CommandPaletteState
	Editor      DurationEditorState
	Toast       *Toast
	Completed   int
	Quitting    bool
	LastError   error

	prefs         storage.Repository
	alerts        AlertDispatcher
	logger        *slog.Logger
	toastDuration time.Duration

	commandInput  textinput.Model
	durationInput textinput.Model
	timerProgress progress.Model
	runSpinner    spinner.Model
	helpModel     help.Model
}

type TickMsg struct {
	Handle countdown.Handle
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type ClearToastMsg struct {
	ID string
}

type AppErrorMsg struct {
	Err error
}

type SwitchModeMsg struct {
	Mode countdown.Mode
}

type ConfigureMsg struct {
	Minutes int
}

// NewModel builds a model around a default 25/5 minute controller.
func NewModel() Model {
	return NewModelWithDeps(Deps{})
}

func NewModelWithDeps(deps Deps) Model {
	if deps.Timer == nil {
		ctrl, err := countdown.New(countdown.Options{FocusSeconds: 25 * 60, RestSeconds: 5 * 60})
		if err != nil {
			panic(err)
		}
		deps.Timer = ctrl
	}
	m := Model{
		Timer:         deps.Timer,
		Theme:         deps.Theme,
		prefs:         deps.Prefs,
		alerts:        deps.Alerts,
		logger:        deps.Logger,
		toastDuration: deps.ToastDuration,
		Status:        StatusBar{Text: "ready"},
		Keys: GlobalKeyMap{
			StartPause: " ",
			Reset:      "r",
			ToggleMode: "m",
			Focus:      "f",
			Rest:       "b",
			Edit:       "e",
			Theme:      "t",
			Palette:    "/",
			Help:       "?",
			Quit:       "q",
		},
	}
	if _, ok := views.ParseTheme(string(m.Theme)); !ok {
		m.Theme = views.ThemeDark
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.toastDuration <= 0 {
		m.toastDuration = defaultToastDuration
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 64
	m.commandInput.Width = 40

	m.durationInput = textinput.New()
	m.durationInput.Prompt = "minutes> "
	m.durationInput.Placeholder = "1-180"
	m.durationInput.CharLimit = 3
	m.durationInput.Width = 8

	m.timerProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	m.runSpinner = spinner.New()
	m.runSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}
