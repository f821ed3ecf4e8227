package timer

import (
	"fmt"
	"log"
	"sync"
	"time"

	"focusboard/internal/core/model"
)

//go:generate mockgen -source=engine.go -destination=mock_notifier_test.go -package=timer

// Notifier delivers a user-facing message when a phase ends.
type Notifier interface {
	Notify(message string) error
}

// Config contains runtime options for the Engine.
type Config struct {
	TickInterval time.Duration
	Scheduler    Scheduler
	Notifier     Notifier
}

// Engine is the work/break countdown state machine.
type Engine struct {
	mu       sync.Mutex
	settings model.TimerSettings
	options  Config

	mode         Mode
	timeLeft     int
	maxTime      int
	currentRound int
	running      bool

	cancel     CancelFunc
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates an Engine in its initial state: Work, round 1, stopped.
func New(settings model.TimerSettings, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}

	engine := &Engine{
		settings: settings,
		options:  options,
	}
	engine.resetLocked()
	return engine
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// State returns a snapshot of the countdown.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.stateLocked()
}

// Settings returns the active settings.
func (engine *Engine) Settings() model.TimerSettings {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.settings
}

// Start toggles the countdown: a running timer pauses, a stopped one resumes.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}

	if engine.running {
		engine.stopDriverLocked()
	} else {
		engine.startDriverLocked()
	}
	engine.emitLocked(Event{Type: EventControl, State: engine.stateLocked(), At: time.Now()})
}

// Reset stops the countdown and returns to the first work round.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopDriverLocked()
	engine.resetLocked()
	engine.emitLocked(Event{Type: EventControl, State: engine.stateLocked(), At: time.Now()})
}

// Skip stops the countdown and advances to the next phase without notifying.
func (engine *Engine) Skip() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopDriverLocked()
	engine.advanceLocked()
	engine.emitLocked(Event{Type: EventTransition, State: engine.stateLocked(), At: time.Now()})
}

// UpdateSettings replaces the settings and discards progress.
func (engine *Engine) UpdateSettings(settings model.TimerSettings) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.settings = settings
	engine.stopDriverLocked()
	engine.resetLocked()
	engine.emitLocked(Event{Type: EventControl, State: engine.stateLocked(), At: time.Now()})
}

// Tick advances the countdown by one second. Ticks while stopped are ignored.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	message, notify := engine.tickLocked(time.Now())
	engine.mu.Unlock()

	if notify {
		engine.deliver(message)
	}
}

// Close stops the driver and closes observers.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.stopDriverLocked()
	engine.closed = true
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) tickGeneration(generation uint64) {
	engine.mu.Lock()
	if generation != engine.generation {
		engine.mu.Unlock()
		return
	}
	message, notify := engine.tickLocked(time.Now())
	engine.mu.Unlock()

	if notify {
		engine.deliver(message)
	}
}

func (engine *Engine) tickLocked(now time.Time) (string, bool) {
	if !engine.running {
		return "", false
	}

	if engine.timeLeft > 1 {
		engine.timeLeft--
		engine.emitLocked(Event{Type: EventTick, State: engine.stateLocked(), At: now})
		return "", false
	}

	message := engine.advanceLocked()
	engine.stopDriverLocked()
	engine.emitLocked(Event{
		Type:    EventTransition,
		Auto:    true,
		State:   engine.stateLocked(),
		Message: message,
		At:      now,
	})
	return message, true
}

// advanceLocked applies the phase transition rule and returns the message for it.
func (engine *Engine) advanceLocked() string {
	var message string
	switch engine.mode {
	case ModeWork:
		if engine.currentRound >= engine.settings.Rounds {
			engine.enterLocked(ModeLongBreak, engine.settings.LongBreakTime)
			message = MessageLongBreak
		} else {
			engine.enterLocked(ModeShortBreak, engine.settings.ShortBreakTime)
			message = MessageShortBreak
		}
	case ModeShortBreak:
		engine.currentRound++
		engine.enterLocked(ModeWork, engine.settings.WorkTime)
		message = MessageFocus
	case ModeLongBreak:
		engine.currentRound = 1
		engine.enterLocked(ModeWork, engine.settings.WorkTime)
		message = MessageFocus
	}
	return message
}

func (engine *Engine) enterLocked(mode Mode, minutes int) {
	engine.mode = mode
	engine.timeLeft = minutes * 60
	engine.maxTime = engine.timeLeft
}

func (engine *Engine) resetLocked() {
	engine.running = false
	engine.currentRound = 1
	engine.enterLocked(ModeWork, engine.settings.WorkTime)
}

func (engine *Engine) startDriverLocked() {
	engine.generation++
	generation := engine.generation
	engine.running = true
	engine.cancel = engine.options.Scheduler.Every(engine.options.TickInterval, func() {
		engine.tickGeneration(generation)
	})
}

// stopDriverLocked cancels the active driver; any callback already in flight
// carries a stale generation and is dropped.
func (engine *Engine) stopDriverLocked() {
	engine.running = false
	engine.generation++
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) stateLocked() State {
	return State{
		Mode:         engine.mode,
		TimeLeft:     engine.timeLeft,
		MaxTime:      engine.maxTime,
		CurrentRound: engine.currentRound,
		TotalRounds:  engine.settings.Rounds,
		IsRunning:    engine.running,
	}
}

func (engine *Engine) deliver(message string) {
	if engine.options.Notifier == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("notify %q: %v", message, fmt.Errorf("panic: %v", recovered))
		}
	}()
	if err := engine.options.Notifier.Notify(message); err != nil {
		log.Printf("notify %q: %v", message, err)
	}
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
