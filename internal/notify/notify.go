// Package notify delivers phase-change messages to the user.
package notify

import (
	"errors"
	"log"
)

// Notifier delivers a message. Implementations report failures instead of
// panicking; callers log and continue.
type Notifier interface {
	Notify(message string) error
}

// Multi sends each message to every notifier and joins their errors.
type Multi []Notifier

// Notify fans message out to all notifiers.
func (multi Multi) Notify(message string) error {
	var errs []error
	for _, notifier := range multi {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log writes the message to the standard logger.
type Log struct {
	Prefix string
}

// Notify logs message.
func (l Log) Notify(message string) error {
	log.Printf("%s%s", l.Prefix, message)
	return nil
}
