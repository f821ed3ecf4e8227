package notify

import (
	"errors"

	"fyne.io/fyne/v2"
)

var errNoApp = errors.New("desktop notifications unavailable: no app")

// Desktop shows a system notification through a Fyne app.
type Desktop struct {
	app   fyne.App
	title string
}

// NewDesktop creates a notifier bound to app.
func NewDesktop(app fyne.App, title string) *Desktop {
	return &Desktop{app: app, title: title}
}

// Notify sends a system notification with the configured title.
func (desktop *Desktop) Notify(message string) error {
	if desktop == nil || desktop.app == nil {
		return errNoApp
	}
	desktop.app.SendNotification(fyne.NewNotification(desktop.title, message))
	return nil
}
