package countdown

import "fmt"

// FormatClock renders seconds as MM:SS. Minutes are not wrapped into hours.
func FormatClock(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

// Progress is the elapsed fraction of the current countdown in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.TotalSeconds <= 0 {
		return 0
	}
	p := float64(s.TotalSeconds-s.SecondsLeft) / float64(s.TotalSeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (s Snapshot) Clock() string {
	return FormatClock(s.SecondsLeft)
}
