package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/pomod/internal/countdown"
)

const (
	MinMinutes = 1
	MaxMinutes = 180
)

// ParseMinutes validates a user supplied duration in whole minutes.
func ParseMinutes(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: duration is empty", countdown.ErrInvalidDuration)
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number of minutes", countdown.ErrInvalidDuration, trimmed)
	}
	if !validMinutes(v) {
		return 0, fmt.Errorf("%w: %d minutes is outside %d-%d", countdown.ErrInvalidDuration, v, MinMinutes, MaxMinutes)
	}
	return v, nil
}

func validMinutes(v int) bool {
	return v >= MinMinutes && v <= MaxMinutes
}
