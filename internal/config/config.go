package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const appName = "pomod"

type RuntimeConfig struct {
	FocusMinutes         int
	RestMinutes          int
	SingleMode           bool
	DesktopNotifications bool
	Bell                 bool
	ToastSeconds         int
	TickInterval         time.Duration
	NotifyBuffer         int
	DBPath               string
	LogPath              string
	LogLevel             string
}

func DefaultRuntimeConfig() RuntimeConfig {
	dir := defaultDataDir()
	return RuntimeConfig{
		FocusMinutes:         25,
		RestMinutes:          5,
		SingleMode:           false,
		DesktopNotifications: false,
		Bell:                 true,
		ToastSeconds:         4,
		TickInterval:         time.Second,
		NotifyBuffer:         8,
		DBPath:               filepath.Join(dir, "pomod.db"),
		LogPath:              filepath.Join(dir, "pomod.log"),
		LogLevel:             "info",
	}
}

// FocusSeconds and RestSeconds are what the countdown controller is built from.
// A single-mode config has no rest duration.
func (c RuntimeConfig) FocusSeconds() int { return c.FocusMinutes * 60 }

func (c RuntimeConfig) RestSeconds() int {
	if c.SingleMode {
		return 0
	}
	return c.RestMinutes * 60
}

func FromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvInt("POMOD_FOCUS_MINUTES"); ok && validMinutes(v) {
		cfg.FocusMinutes = v
	}
	if v, ok := getEnvInt("POMOD_REST_MINUTES"); ok && validMinutes(v) {
		cfg.RestMinutes = v
	}
	if v, ok := getEnvBool("POMOD_SINGLE_MODE"); ok {
		cfg.SingleMode = v
	}
	if v, ok := getEnvBool("POMOD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("POMOD_BELL"); ok {
		cfg.Bell = v
	}
	if v, ok := getEnvInt("POMOD_TOAST_SECONDS"); ok && v > 0 {
		cfg.ToastSeconds = v
	}
	if v, ok := getEnvInt("POMOD_NOTIFY_BUFFER"); ok && v > 0 {
		cfg.NotifyBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("POMOD_DB")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("POMOD_LOG")); v != "" {
		cfg.LogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("POMOD_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "."
	}
	return filepath.Join(dir, appName)
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
