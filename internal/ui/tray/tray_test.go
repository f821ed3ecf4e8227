package tray

import (
	"testing"

	"fyne.io/fyne/v2"

	"focusboard/internal/core/timer"
)

type fakeTrayApp struct {
	menus int
	last  *fyne.Menu
}

func (app *fakeTrayApp) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus++
	app.last = menu
}

func (app *fakeTrayApp) SetSystemTrayIcon(fyne.Resource) {}

func (app *fakeTrayApp) SetSystemTrayWindow(fyne.Window) {}

func TestStatusText(t *testing.T) {
	state := timer.State{Mode: timer.ModeLongBreak, TimeLeft: 899, CurrentRound: 4, TotalRounds: 4}
	if got := StatusText(state); got != "Long Break 14:59 (4/4) paused" {
		t.Fatalf("unexpected status %q", got)
	}
	state.IsRunning = true
	if got := StatusText(state); got != "Long Break 14:59 (4/4)" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestSetStateUpdatesMenu(t *testing.T) {
	app := &fakeTrayApp{}
	toggles := 0
	manager := New(app, "Pomodoro Timer", Callbacks{OnToggle: func() { toggles++ }})
	if app.menus != 1 {
		t.Fatalf("expected menu installed once, got %d", app.menus)
	}

	manager.SetState(timer.State{Mode: timer.ModeWork, TimeLeft: 1500, CurrentRound: 1, TotalRounds: 4, IsRunning: true})
	if manager.toggleItem.Label != "Pause" {
		t.Fatalf("expected Pause label, got %q", manager.toggleItem.Label)
	}
	if manager.statusItem.Label != "Status: Focus Time 25:00 (1/4)" {
		t.Fatalf("unexpected status %q", manager.statusItem.Label)
	}
	if app.menus != 2 || app.last.Label != "Pomodoro Timer" {
		t.Fatalf("expected refreshed menu, got %d", app.menus)
	}

	manager.toggleItem.Action()
	manager.skipItem.Action()
	if toggles != 1 {
		t.Fatalf("expected one toggle, got %d", toggles)
	}
}
