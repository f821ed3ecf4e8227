package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"focusboard/internal/core/model"
)

// Field labels in form order.
const (
	FieldWork       = "Work time (min)"
	FieldShortBreak = "Short break (min)"
	FieldLongBreak  = "Long break (min)"
	FieldRounds     = "Rounds before long break"
)

// ParseSettings converts the form text into validated settings.
func ParseSettings(work, shortBreak, longBreak, rounds string) (model.TimerSettings, error) {
	var settings model.TimerSettings
	fields := []struct {
		label string
		text  string
		dest  *int
	}{
		{FieldWork, work, &settings.WorkTime},
		{FieldShortBreak, shortBreak, &settings.ShortBreakTime},
		{FieldLongBreak, longBreak, &settings.LongBreakTime},
		{FieldRounds, rounds, &settings.Rounds},
	}
	for _, field := range fields {
		value, err := strconv.Atoi(strings.TrimSpace(field.text))
		if err != nil {
			return model.TimerSettings{}, fmt.Errorf("%w: %s must be a whole number", model.ErrInvalidSettings, field.label)
		}
		*field.dest = value
	}
	if err := settings.Validate(); err != nil {
		return model.TimerSettings{}, err
	}
	return settings, nil
}

// FormatSettings returns the form text for settings.
func FormatSettings(settings model.TimerSettings) (work, shortBreak, longBreak, rounds string) {
	return strconv.Itoa(settings.WorkTime),
		strconv.Itoa(settings.ShortBreakTime),
		strconv.Itoa(settings.LongBreakTime),
		strconv.Itoa(settings.Rounds)
}
