package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StateRunning, "Running"},
		{StatePaused, "Paused"},
		{StateStopped, "Stopped"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestGameState_TogglePause(t *testing.T) {
	tests := []struct {
		from     GameState
		expected GameState
	}{
		{StateRunning, StatePaused},
		{StatePaused, StateRunning},
		{StateStopped, StateStopped},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.TogglePause())
		})
	}
}

func TestGameState_Active(t *testing.T) {
	assert.True(t, StateRunning.Active())
	assert.True(t, StatePaused.Active())
	assert.False(t, StateStopped.Active())
}

func TestGameStateConstants(t *testing.T) {
	// Zero value is a running loop
	var s GameState
	assert.Equal(t, StateRunning, s)
	assert.Equal(t, GameState(1), StatePaused)
	assert.Equal(t, GameState(2), StateStopped)
}
