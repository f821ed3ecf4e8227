package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"focusboard/internal/config"
	"focusboard/internal/core/timer"
	"focusboard/internal/notify"
	"focusboard/internal/platform"
	"focusboard/internal/storage"
	"focusboard/internal/ui/term"
)

const appName = "focusboard"

func main() {
	dataDir := platform.DataDir(appName)
	if err := os.MkdirAll(dataDir, 0o755); err == nil {
		if logFile, err := tea.LogToFile(filepath.Join(dataDir, "tui.log"), "tui"); err == nil {
			defer logFile.Close()
		}
	}

	if err := run(); err != nil {
		log.Printf("focusboard-tui: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(appName)
	if err != nil {
		log.Printf("load config, using defaults: %v", err)
		cfg = config.Default(appName)
	}

	ctx := context.Background()
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := timer.New(db.LoadTimerSettings(ctx), timer.Config{
		Notifier: notify.Multi{notify.NewSound(cfg.SoundPath), notify.Log{Prefix: cfg.NotificationTitle + ": "}},
	})
	defer engine.Close()

	p := tea.NewProgram(term.New(engine), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
