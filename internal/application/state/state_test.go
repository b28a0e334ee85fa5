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
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateGameOver, "GameOver"},
		{StateComplete, "Complete"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestGameStateConstants(t *testing.T) {
	assert.Equal(t, GameState(0), StatePlaying)
	assert.Equal(t, GameState(1), StatePaused)
	assert.Equal(t, GameState(2), StateGameOver)
	assert.Equal(t, GameState(3), StateComplete)
}
