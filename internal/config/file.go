package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type yamlConfig struct {
	FocusMinutes         int    `yaml:"focus_minutes"`
	RestMinutes          int    `yaml:"rest_minutes"`
	SingleMode           *bool  `yaml:"single_mode"`
	DesktopNotifications *bool  `yaml:"desktop_notifications"`
	Bell                 *bool  `yaml:"bell"`
	ToastSeconds         int    `yaml:"toast_seconds"`
	TickMillis           int    `yaml:"tick_millis"`
	NotifyBuffer         int    `yaml:"notify_buffer"`
	DBPath               string `yaml:"db_path"`
	LogPath              string `yaml:"log_path"`
	LogLevel             string `yaml:"log_level"`
}

// LoadFile layers a YAML config file over base. A missing file is not an error.
func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}
	applyYAML(&cfg, fileData)
	return cfg, nil
}

// SaveFile writes the durations and toggles of cfg as YAML.
func SaveFile(path string, cfg RuntimeConfig) error {
	single, desktop, bell := cfg.SingleMode, cfg.DesktopNotifications, cfg.Bell
	out, err := yaml.Marshal(yamlConfig{
		FocusMinutes:         cfg.FocusMinutes,
		RestMinutes:          cfg.RestMinutes,
		SingleMode:           &single,
		DesktopNotifications: &desktop,
		Bell:                 &bell,
		ToastSeconds:         cfg.ToastSeconds,
		TickMillis:           int(cfg.TickInterval / time.Millisecond),
		NotifyBuffer:         cfg.NotifyBuffer,
		DBPath:               cfg.DBPath,
		LogPath:              cfg.LogPath,
		LogLevel:             cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func applyYAML(cfg *RuntimeConfig, fileData yamlConfig) {
	if validMinutes(fileData.FocusMinutes) {
		cfg.FocusMinutes = fileData.FocusMinutes
	}
	if validMinutes(fileData.RestMinutes) {
		cfg.RestMinutes = fileData.RestMinutes
	}
	if fileData.SingleMode != nil {
		cfg.SingleMode = *fileData.SingleMode
	}
	if fileData.DesktopNotifications != nil {
		cfg.DesktopNotifications = *fileData.DesktopNotifications
	}
	if fileData.Bell != nil {
		cfg.Bell = *fileData.Bell
	}
	if fileData.ToastSeconds > 0 {
		cfg.ToastSeconds = fileData.ToastSeconds
	}
	if fileData.TickMillis >= 100 {
		cfg.TickInterval = time.Duration(fileData.TickMillis) * time.Millisecond
	}
	if fileData.NotifyBuffer > 0 {
		cfg.NotifyBuffer = fileData.NotifyBuffer
	}
	if v := strings.TrimSpace(fileData.DBPath); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(fileData.LogPath); v != "" {
		cfg.LogPath = v
	}
	if v := strings.TrimSpace(fileData.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}
