package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"focusboard/internal/core/model"
)

// Keys of the settings table.
const (
	KeyTimerSettings = "timer-settings"
	KeyCurrentGroup  = "current-group"
	KeyMusicVolume   = "music-volume"
	KeyMusicTrack    = "music-track"
)

// GetSetting returns the stored value for key.
func (d *Database) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value sql.NullString
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapSettingErr("get", key, err)
	}
	return value.String, value.Valid, nil
}

// SetSetting upserts key.
func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	_, err := d.DB.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return wrapSettingErr("set", key, err)
}

// LoadTimerSettings reads the persisted timer settings.
// Missing, malformed or non-positive records yield the defaults.
func (d *Database) LoadTimerSettings(ctx context.Context) model.TimerSettings {
	defaults := model.DefaultTimerSettings()
	raw, ok, err := d.GetSetting(ctx, KeyTimerSettings)
	if err != nil {
		log.Printf("load timer settings: %v", err)
		return defaults
	}
	if !ok || raw == "" {
		return defaults
	}

	settings := defaults
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		log.Printf("parse timer settings: %v", err)
		return defaults
	}
	if !settings.Positive() {
		log.Printf("parse timer settings: non-positive values in %s", raw)
		return defaults
	}
	return settings
}

// SaveTimerSettings stores settings as a JSON record.
func (d *Database) SaveTimerSettings(ctx context.Context, settings model.TimerSettings) error {
	serialized, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal timer settings: %w", err)
	}
	return d.SetSetting(ctx, KeyTimerSettings, string(serialized))
}

// LoadMusicSettings returns the persisted volume and track.
func (d *Database) LoadMusicSettings(ctx context.Context) (model.MusicSettings, error) {
	settings := model.DefaultMusicSettings()

	volume, ok, err := d.GetSetting(ctx, KeyMusicVolume)
	if err != nil {
		return settings, err
	}
	if ok {
		if parsed, err := strconv.Atoi(volume); err == nil {
			settings.Volume = parsed
		}
	}

	track, ok, err := d.GetSetting(ctx, KeyMusicTrack)
	if err != nil {
		return settings, err
	}
	if ok {
		if parsed, err := strconv.Atoi(track); err == nil {
			settings.TrackIndex = parsed
		}
	}
	return settings, nil
}

// SaveMusicSettings stores volume and track.
func (d *Database) SaveMusicSettings(ctx context.Context, settings model.MusicSettings) error {
	if err := d.SetSetting(ctx, KeyMusicVolume, strconv.Itoa(settings.Volume)); err != nil {
		return err
	}
	return d.SetSetting(ctx, KeyMusicTrack, strconv.Itoa(settings.TrackIndex))
}
