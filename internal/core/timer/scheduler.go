package timer

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled callback. It is safe to call more than once and
// from inside the callback itself.
type CancelFunc func()

// Scheduler invokes fn periodically until cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) CancelFunc
}

// TickerScheduler runs callbacks from a time.Ticker goroutine.
type TickerScheduler struct{}

// Every starts a ticker goroutine calling fn on each tick.
func (TickerScheduler) Every(interval time.Duration, fn func()) CancelFunc {
	stopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stopCh) })
	}
}
