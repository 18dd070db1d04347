package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/pomod/internal/commands"
	"github.com/sandeepkv93/pomod/internal/config"
	"github.com/sandeepkv93/pomod/internal/countdown"
	"github.com/sandeepkv93/pomod/internal/logging"
	"github.com/sandeepkv93/pomod/internal/notify"
	"github.com/sandeepkv93/pomod/internal/storage"
	"github.com/sandeepkv93/pomod/internal/update"
	"github.com/sandeepkv93/pomod/internal/views"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "YAML config file")
	writeConfig := flag.Bool("write-config", false, "Write the effective config to -config and exit")
	resetPrefs := flag.Bool("reset-prefs", false, "Forget the stored theme and durations before starting")
	plain := flag.Bool("plain", false, "Run without the TUI, printing one line per tick")
	var fv flagValues
	flag.StringVar(&fv.db, "db", "", "sqlite preference database (overrides config)")
	flag.StringVar(&fv.log, "log", "", "log file (overrides config)")
	flag.IntVar(&fv.focus, "focus", 0, "Focus duration in minutes (1-180)")
	flag.IntVar(&fv.rest, "rest", 0, "Rest duration in minutes (1-180)")
	flag.BoolVar(&fv.single, "single", false, "Single countdown without a rest mode")
	flag.BoolVar(&fv.verbose, "v", false, "Enable verbose logging")
	flag.Parse()
	fv.set = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { fv.set[f.Name] = true })

	// Config: defaults, file, env, flags.
	cfg, err := config.LoadFile(*configPath, config.DefaultRuntimeConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "pomod: %v\n", err)
		os.Exit(1)
	}
	cfg = config.FromEnv(cfg)
	explicit, err := applyFlags(&cfg, fv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pomod: %v\n", err)
		os.Exit(1)
	}

	if *writeConfig {
		if err := config.SaveFile(*configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "pomod: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", *configPath)
		return
	}

	// Logger
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pomod: %v\n", err)
		os.Exit(1)
	}
	var logger *slog.Logger
	if *plain {
		logger = logging.New(os.Stderr, level)
	} else {
		var closer io.Closer
		logger, closer, err = logging.OpenFile(cfg.LogPath, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pomod: %v\n", err)
			os.Exit(1)
		}
		defer closer.Close()
	}
	slog.SetDefault(logger)

	// Preferences
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open preference store", slog.String("path", cfg.DBPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *resetPrefs {
		removed, err := storage.ClearPreferences(ctx, repo)
		if err != nil {
			logger.Error("failed to reset preferences", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("preferences reset", slog.Int("removed", removed))
	}

	prefs, err := storage.LoadPreferences(ctx, repo)
	if err != nil {
		logger.Warn("ignoring stored preferences", slog.String("error", err.Error()))
		prefs = storage.Preferences{}
	}
	applyPreferences(&cfg, prefs, explicit)

	ctrl, err := countdown.New(countdown.Options{
		FocusSeconds: cfg.FocusSeconds(),
		RestSeconds:  cfg.RestSeconds(),
		TickInterval: cfg.TickInterval,
	})
	if err != nil {
		logger.Error("failed to create countdown", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ctrl.Subscribe(logging.ControllerListener(logger))

	dispatcher := notify.NewDispatcher(cfg.NotifyBuffer, logger, sinks(cfg, os.Stderr)...)
	dispatcher.Start()
	defer func() {
		dispatcher.Stop()
		if dropped := dispatcher.Dropped(); dropped > 0 {
			logger.Warn("alerts dropped", slog.Uint64("count", dropped))
		}
	}()

	logger.Info("starting",
		slog.Int("focus_minutes", cfg.FocusMinutes),
		slog.Int("rest_minutes", cfg.RestMinutes),
		slog.Bool("single", cfg.SingleMode),
		slog.Bool("plain", *plain),
	)

	if *plain {
		runPlain(ctx, ctrl, dispatcher, os.Stdin, os.Stdout, logger)
		logger.Info("shutting down")
		return
	}

	theme := views.DetectTheme()
	if t, ok := views.ParseTheme(prefs.Theme); ok {
		theme = t
	}
	model := update.NewModelWithDeps(update.Deps{
		Timer:         ctrl,
		Prefs:         repo,
		Alerts:        dispatcher,
		Logger:        logger,
		Theme:         theme,
		ToastDuration: time.Duration(cfg.ToastSeconds) * time.Second,
	})
	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("tui failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "pomod failed: %v\n", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}

type flagValues struct {
	set     map[string]bool
	db      string
	log     string
	focus   int
	rest    int
	single  bool
	verbose bool
}

type explicitFlags struct {
	focus bool
	rest  bool
}

// applyFlags layers the flags the user actually set over cfg. Durations go
// through the same validation as the duration editor.
func applyFlags(cfg *config.RuntimeConfig, fv flagValues) (explicitFlags, error) {
	var out explicitFlags
	if fv.db != "" {
		cfg.DBPath = fv.db
	}
	if fv.log != "" {
		cfg.LogPath = fv.log
	}
	if fv.set["focus"] {
		v, err := config.ParseMinutes(strconv.Itoa(fv.focus))
		if err != nil {
			return out, fmt.Errorf("-focus: %w", err)
		}
		cfg.FocusMinutes = v
		out.focus = true
	}
	if fv.set["rest"] {
		v, err := config.ParseMinutes(strconv.Itoa(fv.rest))
		if err != nil {
			return out, fmt.Errorf("-rest: %w", err)
		}
		cfg.RestMinutes = v
		out.rest = true
	}
	if fv.single {
		cfg.SingleMode = true
	}
	if fv.verbose {
		cfg.LogLevel = "debug"
	}
	return out, nil
}

// applyPreferences restores the last durations set from the UI unless a flag
// asked for something else.
func applyPreferences(cfg *config.RuntimeConfig, prefs storage.Preferences, explicit explicitFlags) {
	if !explicit.focus && prefs.FocusMinutes >= config.MinMinutes && prefs.FocusMinutes <= config.MaxMinutes {
		cfg.FocusMinutes = prefs.FocusMinutes
	}
	if !explicit.rest && prefs.RestMinutes >= config.MinMinutes && prefs.RestMinutes <= config.MaxMinutes {
		cfg.RestMinutes = prefs.RestMinutes
	}
}

// sinks builds the completion side effects. The bell goes to bell rather than
// stdout, which the TUI renderer owns.
func sinks(cfg config.RuntimeConfig, bell io.Writer) []notify.Sink {
	var out []notify.Sink
	if cfg.DesktopNotifications {
		out = append(out, notify.DesktopSink{})
	}
	if cfg.Bell {
		out = append(out, notify.BellSink{W: bell})
	}
	return out
}

// runPlain prints the countdown as text lines and reads palette commands
// ("start", "pause", "set 10", ...) from in, one per line. It returns when ctx
// is done, leaving a running countdown paused.
func runPlain(ctx context.Context, ctrl *countdown.Controller, alerts *notify.Dispatcher, in io.Reader, out io.Writer, logger *slog.Logger) {
	runner := countdown.NewRunner(ctrl)
	defer runner.Stop()

	ctrl.Subscribe(func(ev countdown.Event) {
		snap := ev.Snapshot
		switch ev.Type {
		case countdown.EventComplete:
			fmt.Fprintf(out, "%s %s complete\n", countdown.FormatClock(0), ev.Completion.Mode.Label())
			_ = alerts.Dispatch(notify.Alert{
				ID:    ev.Completion.ID,
				Title: "pomod",
				Body:  ev.Completion.Mode.Label() + " complete",
				Level: notify.LevelSuccess,
				At:    ev.Completion.At,
			})
		default:
			fmt.Fprintf(out, "%s %s %s\n", snap.Clock(), snap.Mode.Label(), snap.State.Label())
		}
	})

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	handlers := commands.Handlers{
		Set: func(a commands.SetArgs) (commands.Result, error) {
			return commands.Result{}, runner.Configure(a.Minutes * 60)
		},
		Mode: func(a commands.ModeArgs) (commands.Result, error) {
			return commands.Result{}, runner.SwitchMode(a.Mode)
		},
		Start: func() (commands.Result, error) {
			runner.Start(ctx)
			return commands.Result{}, nil
		},
		Pause: func() (commands.Result, error) {
			runner.Pause()
			return commands.Result{}, nil
		},
		Reset: func() (commands.Result, error) {
			runner.Reset()
			return commands.Result{}, nil
		},
	}

	snap := runner.Snapshot()
	fmt.Fprintf(out, "%s %s %s\n", snap.Clock(), snap.Mode.Label(), snap.State.Label())
	runner.Start(ctx)
	for {
		select {
		case <-ctx.Done():
			runner.Pause()
			return
		case line, ok := <-lines:
			if !ok {
				// stdin closed: keep counting until interrupted.
				lines = nil
				continue
			}
			cmd, err := commands.Parse(line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			if _, err := commands.Execute(cmd, handlers); err != nil {
				logger.Warn("command failed", slog.String("input", line), slog.String("error", err.Error()))
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pomod.yaml"
	}
	return filepath.Join(dir, "pomod", "config.yaml")
}
