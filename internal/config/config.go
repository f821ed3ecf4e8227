// Package config loads the application configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"focusboard/internal/platform"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config contains the runtime options of the application.
type Config struct {
	ListenAddr        string `yaml:"listen_addr"`
	DatabasePath      string `yaml:"database_path"`
	SoundPath         string `yaml:"sound_path"`
	AudioDir          string `yaml:"audio_dir"`
	Tray              bool   `yaml:"tray"`
	NotificationTitle string `yaml:"notification_title"`
}

// fileConfig mirrors Config with optional fields so absent keys keep defaults.
type fileConfig struct {
	ListenAddr        string `yaml:"listen_addr"`
	DatabasePath      string `yaml:"database_path"`
	SoundPath         string `yaml:"sound_path"`
	AudioDir          string `yaml:"audio_dir"`
	Tray              *bool  `yaml:"tray"`
	NotificationTitle string `yaml:"notification_title"`
}

// Default returns the configuration used when no file is present.
func Default(appName string) Config {
	dataDir := platform.DataDir(appName)
	return Config{
		ListenAddr:        "127.0.0.1:5000",
		DatabasePath:      filepath.Join(dataDir, appName+".db"),
		SoundPath:         filepath.Join(dataDir, "notification.mp3"),
		AudioDir:          filepath.Join(dataDir, "audio"),
		Tray:              true,
		NotificationTitle: "Pomodoro Timer",
	}
}

// Path returns the location of the configuration file for appName.
func Path(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFileName), nil
}

// Load reads the configuration for appName.
// If the config file does not exist, default settings are returned.
func Load(appName string) (Config, error) {
	configPath, err := Path(appName)
	if err != nil {
		return Default(appName), err
	}
	return LoadFile(appName, configPath)
}

// LoadFile reads configuration from configPath on top of the defaults.
func LoadFile(appName, configPath string) (Config, error) {
	cfg := Default(appName)

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData fileConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	applyFileConfig(&cfg, fileData)
	return cfg, nil
}

// Save writes cfg to configPath.
func Save(configPath string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func applyFileConfig(cfg *Config, fileData fileConfig) {
	if fileData.ListenAddr != "" {
		cfg.ListenAddr = fileData.ListenAddr
	}
	if fileData.DatabasePath != "" {
		cfg.DatabasePath = fileData.DatabasePath
	}
	if fileData.SoundPath != "" {
		cfg.SoundPath = fileData.SoundPath
	}
	if fileData.AudioDir != "" {
		cfg.AudioDir = fileData.AudioDir
	}
	if fileData.Tray != nil {
		cfg.Tray = *fileData.Tray
	}
	if fileData.NotificationTitle != "" {
		cfg.NotificationTitle = fileData.NotificationTitle
	}
}
