package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"focusboard/internal/core/timer"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle   func()
	OnReset    func()
	OnSkip     func()
	OnSettings func()
	OnQuit     func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	title      string
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	skipItem   *fyne.MenuItem
	settings   *fyne.MenuItem
	quit       *fyne.MenuItem
	callbacks  Callbacks
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))
	manager.skipItem = fyne.NewMenuItem("Skip", invoke(&manager.callbacks.OnSkip))
	manager.settings = fyne.NewMenuItem("Settings", invoke(&manager.callbacks.OnSettings))
	manager.quit = fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	manager.quit.IsQuit = true

	manager.refreshMenu()
	return manager
}

// SetState mirrors the timer snapshot in the menu.
func (manager *Manager) SetState(state timer.State) {
	manager.statusItem.Label = "Status: " + StatusText(state)
	if state.IsRunning {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		manager.skipItem,
		fyne.NewMenuItemSeparator(),
		manager.settings,
		manager.quit,
	)
}

// StatusText renders a one-line summary such as "Focus Time 24:59 (1/4)".
func StatusText(state timer.State) string {
	minutes := state.TimeLeft / 60
	seconds := state.TimeLeft % 60
	text := fmt.Sprintf("%s %02d:%02d (%d/%d)", state.Mode.Label(), minutes, seconds, state.CurrentRound, state.TotalRounds)
	if !state.IsRunning {
		text += " paused"
	}
	return text
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
