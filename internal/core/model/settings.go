package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSettings indicates a TimerSettings value outside the accepted bounds.
var ErrInvalidSettings = errors.New("invalid timer settings")

// Bounds accepted for user supplied timer settings, in minutes (rounds for Rounds).
const (
	MinWorkTime       = 1
	MaxWorkTime       = 60
	MinShortBreakTime = 1
	MaxShortBreakTime = 30
	MinLongBreakTime  = 5
	MaxLongBreakTime  = 60
	MinRounds         = 1
	MaxRounds         = 10
)

// TimerSettings holds the user-configurable durations of the work/break cycle.
type TimerSettings struct {
	WorkTime       int `json:"workTime"`
	ShortBreakTime int `json:"shortBreakTime"`
	LongBreakTime  int `json:"longBreakTime"`
	Rounds         int `json:"rounds"`
}

// DefaultTimerSettings returns the classic 25/5/15 cycle with four rounds.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		WorkTime:       25,
		ShortBreakTime: 5,
		LongBreakTime:  15,
		Rounds:         4,
	}
}

// Validate checks the settings against the UI bounds.
func (settings TimerSettings) Validate() error {
	checks := []struct {
		name     string
		value    int
		min, max int
	}{
		{"workTime", settings.WorkTime, MinWorkTime, MaxWorkTime},
		{"shortBreakTime", settings.ShortBreakTime, MinShortBreakTime, MaxShortBreakTime},
		{"longBreakTime", settings.LongBreakTime, MinLongBreakTime, MaxLongBreakTime},
		{"rounds", settings.Rounds, MinRounds, MaxRounds},
	}
	for _, check := range checks {
		if check.value < check.min || check.value > check.max {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d",
				ErrInvalidSettings, check.name, check.min, check.max, check.value)
		}
	}
	return nil
}

// Positive reports whether every field is structurally usable by the engine.
func (settings TimerSettings) Positive() bool {
	return settings.WorkTime > 0 && settings.ShortBreakTime > 0 &&
		settings.LongBreakTime > 0 && settings.Rounds > 0
}

// WorkDuration returns the work phase length.
func (settings TimerSettings) WorkDuration() time.Duration {
	return time.Duration(settings.WorkTime) * time.Minute
}

// ShortBreakDuration returns the short break length.
func (settings TimerSettings) ShortBreakDuration() time.Duration {
	return time.Duration(settings.ShortBreakTime) * time.Minute
}

// LongBreakDuration returns the long break length.
func (settings TimerSettings) LongBreakDuration() time.Duration {
	return time.Duration(settings.LongBreakTime) * time.Minute
}
