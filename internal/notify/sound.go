package notify

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Sound plays an mp3 file on every message.
type Sound struct {
	path string

	mu         sync.Mutex
	sampleRate beep.SampleRate
}

// NewSound creates a notifier playing the mp3 at path.
func NewSound(path string) *Sound {
	return &Sound{path: path}
}

// Path returns the sound file location.
func (sound *Sound) Path() string {
	return sound.path
}

// Notify decodes the sound file and queues it on the speaker. It does not
// wait for playback to finish.
func (sound *Sound) Notify(string) error {
	streamer, format, err := sound.decode()
	if err != nil {
		return err
	}

	if err := sound.initSpeaker(format.SampleRate); err != nil {
		_ = streamer.Close()
		return err
	}

	var playable beep.Streamer = streamer
	if format.SampleRate != sound.sampleRate {
		playable = beep.Resample(4, format.SampleRate, sound.sampleRate, streamer)
	}
	speaker.Play(beep.Seq(playable, beep.Callback(func() {
		_ = streamer.Close()
	})))
	return nil
}

func (sound *Sound) decode() (beep.StreamSeekCloser, beep.Format, error) {
	file, err := os.Open(sound.path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open sound file: %w", err)
	}
	streamer, format, err := mp3.Decode(file)
	if err != nil {
		_ = file.Close()
		return nil, beep.Format{}, fmt.Errorf("decode sound file: %w", err)
	}
	return streamer, format, nil
}

func (sound *Sound) initSpeaker(rate beep.SampleRate) error {
	sound.mu.Lock()
	defer sound.mu.Unlock()
	if sound.sampleRate != 0 {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	sound.sampleRate = rate
	return nil
}
