package timer

import "time"

// Mode is the current phase of the cycle.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Label returns the human readable phase name.
func (mode Mode) Label() string {
	switch mode {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Focus Time"
	}
}

// EventType defines the type of engine event.
type EventType string

const (
	EventTick       EventType = "tick"
	EventTransition EventType = "transition"
	EventControl    EventType = "control"
)

// Notification messages sent on automatic transitions.
const (
	MessageShortBreak = "Time for a short break!"
	MessageLongBreak  = "Time for a long break!"
	MessageFocus      = "Break complete! Time to focus!"
)

// State is a snapshot of the countdown.
type State struct {
	Mode         Mode `json:"mode"`
	TimeLeft     int  `json:"timeLeft"`
	MaxTime      int  `json:"maxTime"`
	CurrentRound int  `json:"currentRound"`
	TotalRounds  int  `json:"totalRounds"`
	IsRunning    bool `json:"isRunning"`
}

// Progress returns the elapsed share of the current phase in [0, 1].
func (state State) Progress() float64 {
	if state.MaxTime <= 0 {
		return 0
	}
	progress := float64(state.MaxTime-state.TimeLeft) / float64(state.MaxTime)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Remaining returns TimeLeft as a duration.
func (state State) Remaining() time.Duration {
	return time.Duration(state.TimeLeft) * time.Second
}

// Event represents an engine update for observers.
type Event struct {
	Type EventType
	// Auto is set on transitions caused by a zero-crossing rather than Skip.
	Auto    bool
	State   State
	Message string
	At      time.Time
}
