package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfg, err := LoadFile("focusboard", filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg != Default("focusboard") {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.ListenAddr != "127.0.0.1:5000" || !cfg.Tray {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFileOverridesPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "listen_addr: \":8080\"\ntray: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := LoadFile("focusboard", path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	defaults := Default("focusboard")
	if cfg.ListenAddr != ":8080" || cfg.Tray {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.DatabasePath != defaults.DatabasePath || cfg.NotificationTitle != defaults.NotificationTitle {
		t.Fatalf("absent fields should keep defaults: %+v", cfg)
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	if _, err := LoadFile("focusboard", path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default("focusboard")
	want.ListenAddr = "0.0.0.0:9000"
	want.Tray = false
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := LoadFile("focusboard", path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
