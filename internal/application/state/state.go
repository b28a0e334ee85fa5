// Package state defines the coarse phases of a play session. The scene
// uses them to decide what to simulate and what overlay to draw; the
// simulation itself never reads them.
package state

// GameState is the phase the play session is in.
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
	StateComplete
)

// String returns the phase name.
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}
