// Package replay stores and plays back recorded input sessions. The
// simulation is deterministic, so the level name plus the button states
// for every step reproduce a run exactly.
package replay

import (
	"github.com/seojinpark/blade/internal/application/system"
)

// Version is the current recording format version.
const Version = "1.0"

// FrameData records the held buttons for a single simulation step. Only
// held state is stored; press and release edges are derived during
// playback by diffing consecutive steps, the same way live input is.
type FrameData struct {
	F int  `json:"f"`
	L bool `json:"l,omitempty"` // left
	R bool `json:"r,omitempty"` // right
	J bool `json:"j,omitempty"` // jump
	A bool `json:"a,omitempty"` // attack
	D bool `json:"d,omitempty"` // dash
}

// Frame converts one step's buttons into stored form.
func Frame(n int, b system.Buttons) FrameData {
	return FrameData{
		F: n,
		L: b.Left,
		R: b.Right,
		J: b.Jump,
		A: b.Attack,
		D: b.Dash,
	}
}

// Buttons restores the held state this frame records.
func (f FrameData) Buttons() system.Buttons {
	return system.Buttons{
		Left:   f.L,
		Right:  f.R,
		Jump:   f.J,
		Attack: f.A,
		Dash:   f.D,
	}
}

// Data is one recorded session.
type Data struct {
	Version   string      `json:"version"`
	Level     string      `json:"level"`
	StartTime string      `json:"startTime"`
	Frames    []FrameData `json:"frames"`
}
