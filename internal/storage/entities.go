package storage

import "time"

const (
	KeyTheme        = "theme"
	KeyFocusMinutes = "focus_minutes"
	KeyRestMinutes  = "rest_minutes"
)

type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
