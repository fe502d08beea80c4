package replay

import "github.com/younwookim/raycaster/internal/infrastructure/backend"

// FormatVersion is written into every recording
const FormatVersion = "2.0"

// FrameInput records the events polled in a single frame
type FrameInput struct {
	F    int      `json:"f"`              // Frame number
	Keys []string `json:"keys,omitempty"` // KeyDown events in arrival order
	Quit bool     `json:"quit,omitempty"` // Window close request
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// EncodeFrame converts polled events into a recorded frame
func EncodeFrame(frame int, events []backend.Event) FrameInput {
	fi := FrameInput{F: frame}
	for _, ev := range events {
		switch ev.Kind {
		case backend.EventQuit:
			fi.Quit = true
		case backend.EventKeyDown:
			fi.Keys = append(fi.Keys, ev.Key.String())
		}
	}
	return fi
}

// Events converts a recorded frame back into events. A quit follows the keys.
func (fi FrameInput) Events() []backend.Event {
	events := make([]backend.Event, 0, len(fi.Keys)+1)
	for _, name := range fi.Keys {
		events = append(events, backend.KeyPress(backend.ParseKey(name)))
	}
	if fi.Quit {
		events = append(events, backend.Quit())
	}
	return events
}
