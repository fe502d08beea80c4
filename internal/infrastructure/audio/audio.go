// Package audio plays short procedural sound cues through the beep speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/younwookim/raycaster/internal/infrastructure/config"
)

const bufferDuration = 100 * time.Millisecond

// Player plays short interface cues through the system speaker
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	bumpHz      float64
	bumpLength  time.Duration
	volume      float64
	initialized bool
}

// New creates a player from config. Nothing is opened until Initialize.
func New(cfg config.AudioConfig) *Player {
	return &Player{
		rate:       beep.SampleRate(cfg.SampleRate),
		mixer:      &beep.Mixer{},
		bumpHz:     cfg.BumpHz,
		bumpLength: time.Duration(cfg.BumpMillis) * time.Millisecond,
		volume:     cfg.Volume,
	}
}

// Initialize opens the speaker and starts the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(bufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}

// Bump plays the wall-collision thud. It is a no-op before Initialize.
func (p *Player) Bump() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := p.BumpStreamer()
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// BumpStreamer returns a fresh, finite stream of the collision cue
func (p *Player) BumpStreamer() beep.Streamer {
	n := p.rate.N(p.bumpLength)
	return beep.Take(n, NewThud(p.bumpHz, n, p.volume, p.rate))
}

// thud is a sine tone with a linear fade to silence
type thud struct {
	freq     float64
	phase    float64
	length   int
	position int
	volume   float64
	rate     beep.SampleRate
}

// NewThud creates a tone that fades out over length samples
func NewThud(freq float64, length int, volume float64, rate beep.SampleRate) beep.Streamer {
	return &thud{
		freq:   freq,
		length: length,
		volume: volume,
		rate:   rate,
	}
}

func (t *thud) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		fade := 1 - float64(t.position)/float64(t.length)
		val := t.volume * fade * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *thud) Err() error { return nil }
