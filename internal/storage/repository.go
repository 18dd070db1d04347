package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	GetPreference(ctx context.Context, key string) (Preference, error)
	SetPreference(ctx context.Context, in Preference) error
	DeletePreference(ctx context.Context, key string) error
	ListPreferences(ctx context.Context) ([]Preference, error)
}
