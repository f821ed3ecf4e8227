package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"focusboard/internal/config"
	"focusboard/internal/core/model"
	"focusboard/internal/core/music"
	"focusboard/internal/core/timer"
	"focusboard/internal/notify"
	"focusboard/internal/platform"
	"focusboard/internal/server"
	"focusboard/internal/storage"
	"focusboard/internal/ui/overlay"
	"focusboard/internal/ui/preferences"
	"focusboard/internal/ui/tray"
	"focusboard/internal/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	appName = "focusboard"
	appID   = "com.focusboard.app"
)

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			util.LogError("activate running instance", platform.ActivateRunning(appName))
		} else {
			log.Printf("single instance: %v", err)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	cfg, err := config.Load(appName)
	if err != nil {
		log.Printf("load config, using defaults: %v", err)
		cfg = config.Default(appName)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Printf("open storage: %v", err)
		return
	}
	defer func() {
		util.LogError("close storage", db.Close())
	}()

	settings := db.LoadTimerSettings(ctx)
	player := music.NewPlayer(ctx, db, nil)
	sound := notify.NewSound(cfg.SoundPath)

	if !cfg.Tray {
		runHeadless(ctx, cfg, db, player, settings, notify.Multi{sound, notify.Log{Prefix: cfg.NotificationTitle + ": "}})
		return
	}

	fyneApp := app.NewWithID(appID)
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform, running headless")
		runHeadless(ctx, cfg, db, player, settings, notify.Multi{sound, notify.Log{Prefix: cfg.NotificationTitle + ": "}})
		return
	}

	engine := timer.New(settings, timer.Config{
		Notifier: notify.Multi{notify.NewDesktop(fyneApp, cfg.NotificationTitle), sound},
	})
	defer engine.Close()

	srv := newServer(cfg, engine, db, player)
	go func() {
		util.LogError("http server", srv.Run(ctx))
	}()

	trayWindow := fyneApp.NewWindow(cfg.NotificationTitle)
	trayWindow.SetContent(widget.NewLabel(cfg.NotificationTitle + " is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	prefsWindow := preferences.New(fyneApp, settings, func(updated model.TimerSettings) error {
		if err := db.SaveTimerSettings(ctx, updated); err != nil {
			return err
		}
		engine.UpdateSettings(updated)
		return nil
	})
	showSettings := func() {
		prefsWindow.UpdateSettings(engine.Settings())
		prefsWindow.Show()
	}

	trayManager := tray.New(desktopApp, cfg.NotificationTitle, tray.Callbacks{
		OnToggle:   engine.Start,
		OnReset:    engine.Reset,
		OnSkip:     engine.Skip,
		OnSettings: showSettings,
		OnQuit: func() {
			engine.Close()
			fyneApp.Quit()
		},
	})
	trayManager.SetState(engine.State())
	desktopApp.SetSystemTrayIcon(theme.HistoryIcon())

	breakPanel := overlay.New(fyneApp, overlay.Config{Opacity: 220, Title: cfg.NotificationTitle})
	breakPanel.SetOnToggle(engine.Start)
	breakPanel.SetOnSkip(engine.Skip)

	events := engine.Subscribe(16)
	go func() {
		for event := range events {
			fyne.Do(func() {
				trayManager.SetState(event.State)
				breakPanel.Update(event.State, event.Message)
			})
		}
	}()

	go guard.Serve(func() {
		fyne.Do(showSettings)
	})
	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	fyneApp.Run()
}

func newServer(cfg config.Config, engine *timer.Engine, db *storage.Database, player *music.Player) *server.Server {
	return server.New(server.Options{
		Addr:      cfg.ListenAddr,
		SoundPath: cfg.SoundPath,
		AudioDir:  cfg.AudioDir,
	}, engine, db, player)
}

// runHeadless serves HTTP only until ctx is cancelled.
func runHeadless(ctx context.Context, cfg config.Config, db *storage.Database, player *music.Player, settings model.TimerSettings, notifier notify.Notifier) {
	engine := timer.New(settings, timer.Config{Notifier: notifier})
	defer engine.Close()

	if err := newServer(cfg, engine, db, player).Run(ctx); err != nil {
		log.Printf("http server: %v", err)
	}
}
