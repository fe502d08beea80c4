package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/raycaster/internal/infrastructure/backend"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Next returns the events for the current frame and advances
func (r *Replayer) Next() ([]backend.Event, bool) {
	if r.frame >= len(r.data.Frames) {
		return nil, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Events(), true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Stage returns the stage the recording was made on
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Backend feeds recorded events to the engine in place of live input.
// Live events are discarded, except that a window close still quits.
// After the last recorded frame it reports Quit.
type Backend struct {
	backend.Backend
	replayer *Replayer
}

// NewBackend wraps a live backend with a replayer
func NewBackend(live backend.Backend, r *Replayer) *Backend {
	return &Backend{Backend: live, replayer: r}
}

// PollEvents returns the next recorded frame
func (b *Backend) PollEvents() []backend.Event {
	var quit bool
	for _, ev := range b.Backend.PollEvents() {
		if ev.Kind == backend.EventQuit {
			quit = true
		}
	}

	events, ok := b.replayer.Next()
	if !ok || quit {
		events = append(events, backend.Quit())
	}
	return events
}

// CreateTestReplayData creates replay data for testing: every frame presses the given keys
func CreateTestReplayData(frames int, keys ...backend.Key) ReplayData {
	data := ReplayData{
		Version: FormatVersion,
		Stage:   "test",
		Frames:  make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		events := make([]backend.Event, 0, len(keys))
		for _, k := range keys {
			events = append(events, backend.KeyPress(k))
		}
		data.Frames[i] = EncodeFrame(i, events)
	}

	return data
}
