package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Preferences is the typed view of the preference table. Zero values mean
// "not stored".
type Preferences struct {
	Theme        string
	FocusMinutes int
	RestMinutes  int
}

func LoadPreferences(ctx context.Context, repo Repository) (Preferences, error) {
	var out Preferences
	theme, err := getOptional(ctx, repo, KeyTheme)
	if err != nil {
		return out, err
	}
	out.Theme = theme
	if out.FocusMinutes, err = getOptionalInt(ctx, repo, KeyFocusMinutes); err != nil {
		return out, err
	}
	if out.RestMinutes, err = getOptionalInt(ctx, repo, KeyRestMinutes); err != nil {
		return out, err
	}
	return out, nil
}

func SaveTheme(ctx context.Context, repo Repository, theme string) error {
	if err := repo.SetPreference(ctx, Preference{Key: KeyTheme, Value: theme}); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func SaveMinutes(ctx context.Context, repo Repository, key string, minutes int) error {
	if err := repo.SetPreference(ctx, Preference{Key: key, Value: strconv.Itoa(minutes)}); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ClearPreferences deletes every stored preference and reports how many were
// removed.
func ClearPreferences(ctx context.Context, repo Repository) (int, error) {
	prefs, err := repo.ListPreferences(ctx)
	if err != nil {
		return 0, fmt.Errorf("list preferences: %w", err)
	}
	removed := 0
	for _, p := range prefs {
		if err := repo.DeletePreference(ctx, p.Key); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return removed, fmt.Errorf("delete %s: %w", p.Key, err)
		}
		removed++
	}
	return removed, nil
}

func getOptional(ctx context.Context, repo Repository, key string) (string, error) {
	pref, err := repo.GetPreference(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return pref.Value, nil
}

func getOptionalInt(ctx context.Context, repo Repository, key string) (int, error) {
	raw, err := getOptional(ctx, repo, key)
	if err != nil || raw == "" {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}
