package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/breaker/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// Speaker is a Sink that mixes short sine blips into the system speaker.
type Speaker struct {
	mixer *beep.Mixer
	blip  *beep.Buffer // Rendered once, replayed per collision
}

// NewSpeaker renders the collision tone, then initializes the speaker and
// starts an empty mixer on it. A tone the config cannot produce fails here,
// before the device is opened.
func NewSpeaker(cfg config.AudioConfig) (*Speaker, error) {
	tone, err := newBlip(sampleRate, cfg.Frequency, time.Duration(cfg.DurationMs)*time.Millisecond, cfg.Volume)
	if err != nil {
		return nil, err
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(tone)

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot init speaker: %w", err)
	}

	s := &Speaker{mixer: &beep.Mixer{}, blip: buf}
	speaker.Play(s.mixer)
	return s, nil
}

// Blip queues one collision sound.
func (s *Speaker) Blip() {
	speaker.Lock()
	s.mixer.Add(s.blip.Streamer(0, s.blip.Len()))
	speaker.Unlock()
}

// Close silences pending blips and releases the audio device.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// newBlip returns a finite sine tone at the given linear volume.
func newBlip(sr beep.SampleRate, freq float64, d time.Duration, vol float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot build tone: %w", err)
	}
	return beep.Take(sr.N(d), withVolume(tone, vol)), nil
}

// withVolume scales a stream linearly. Zero or less mutes it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
