// Package music tracks the background player: playlist position, volume and
// whether playback is on. Decoding and output belong to the client.
package music

import (
	"context"
	"sync"

	"focusboard/internal/core/model"
	"focusboard/internal/util"
)

// Store persists the player settings.
type Store interface {
	LoadMusicSettings(ctx context.Context) (model.MusicSettings, error)
	SaveMusicSettings(ctx context.Context, settings model.MusicSettings) error
}

// State is a snapshot of the player.
type State struct {
	IsPlaying         bool        `json:"isPlaying"`
	Volume            int         `json:"volume"`
	CurrentTrackIndex int         `json:"currentTrackIndex"`
	CurrentTrackName  string      `json:"currentTrackName"`
	CurrentTrack      model.Track `json:"currentTrack"`
}

// Player is safe for concurrent use.
type Player struct {
	mu       sync.Mutex
	store    Store
	playlist []model.Track
	playing  bool
	settings model.MusicSettings
}

// NewPlayer restores volume and track from store. A nil store keeps everything in memory.
func NewPlayer(ctx context.Context, store Store, playlist []model.Track) *Player {
	if len(playlist) == 0 {
		playlist = model.DefaultPlaylist()
	}
	player := &Player{
		store:    store,
		playlist: playlist,
		settings: model.DefaultMusicSettings(),
	}
	if store != nil {
		settings, err := store.LoadMusicSettings(ctx)
		util.LogError("load music settings", err)
		if err == nil {
			player.settings = settings
		}
	}
	player.settings.Volume = clampVolume(player.settings.Volume)
	if player.settings.TrackIndex < 0 || player.settings.TrackIndex >= len(playlist) {
		player.settings.TrackIndex = 0
	}
	return player
}

// State returns the current snapshot.
func (player *Player) State() State {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.stateLocked()
}

// Playlist returns a copy of the tracks.
func (player *Player) Playlist() []model.Track {
	return append([]model.Track(nil), player.playlist...)
}

// Toggle flips playback on or off.
func (player *Player) Toggle() State {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.playing = !player.playing
	return player.stateLocked()
}

// SetVolume sets the volume, clamped to 0..100.
func (player *Player) SetVolume(ctx context.Context, volume int) State {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.settings.Volume = clampVolume(volume)
	player.saveLocked(ctx)
	return player.stateLocked()
}

// Next moves to the following track, wrapping to the first.
func (player *Player) Next(ctx context.Context) State {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.settings.TrackIndex = (player.settings.TrackIndex + 1) % len(player.playlist)
	player.saveLocked(ctx)
	return player.stateLocked()
}

// Previous moves to the preceding track, wrapping to the last.
func (player *Player) Previous(ctx context.Context) State {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.settings.TrackIndex == 0 {
		player.settings.TrackIndex = len(player.playlist) - 1
	} else {
		player.settings.TrackIndex--
	}
	player.saveLocked(ctx)
	return player.stateLocked()
}

func (player *Player) saveLocked(ctx context.Context) {
	if player.store == nil {
		return
	}
	util.LogError("save music settings", player.store.SaveMusicSettings(ctx, player.settings))
}

func (player *Player) stateLocked() State {
	track := player.playlist[player.settings.TrackIndex]
	return State{
		IsPlaying:         player.playing,
		Volume:            player.settings.Volume,
		CurrentTrackIndex: player.settings.TrackIndex,
		CurrentTrackName:  track.Title,
		CurrentTrack:      track,
	}
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}
