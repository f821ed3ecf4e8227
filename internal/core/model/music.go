package model

// Track is one entry of the background music playlist.
type Track struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Artist string `json:"artist,omitempty"`
}

// MusicSettings is the persisted part of the player.
type MusicSettings struct {
	Volume     int `json:"volume"`
	TrackIndex int `json:"trackIndex"`
}

// DefaultMusicSettings returns half volume on the first track.
func DefaultMusicSettings() MusicSettings {
	return MusicSettings{Volume: 50, TrackIndex: 0}
}

// DefaultPlaylist returns the bundled lofi tracks.
func DefaultPlaylist() []Track {
	const url = "/audio/lofi-beat-1.mp3"
	return []Track{
		{ID: "chill-study-beats", Title: "Chill Study Beats", URL: url, Artist: "Mixkit Music"},
		{ID: "lofi-chill", Title: "Lofi Chill", URL: url, Artist: "Mixkit Music"},
		{ID: "coffee-chill", Title: "Coffee Chill", URL: url, Artist: "Mixkit Music"},
		{ID: "ambient-piano", Title: "Ambient Piano", URL: url, Artist: "Mixkit Music"},
		{ID: "peaceful-garden", Title: "Peaceful Garden", URL: url, Artist: "Mixkit Music"},
	}
}
