// Package system holds the per-step simulation systems: input sampling,
// physics integration, tile collision resolution, the player state
// machine, combat, and enemy AI. Systems are plain structs updated once
// per fixed step by the world.
package system

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Action identifies a logical input action. Actions decouple the
// simulation from physical keys so replays and tests can drive the world
// without a keyboard.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionJump
	ActionAttack
	ActionDash
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionJump:
		return "jump"
	case ActionAttack:
		return "attack"
	case ActionDash:
		return "dash"
	default:
		return "unknown"
	}
}

// Buttons is the set of action states for a single step. It is the unit
// of input the world consumes and the replay system records.
type Buttons struct {
	Left   bool
	Right  bool
	Jump   bool
	Attack bool
	Dash   bool
}

func (b Buttons) get(a Action) bool {
	switch a {
	case ActionLeft:
		return b.Left
	case ActionRight:
		return b.Right
	case ActionJump:
		return b.Jump
	case ActionAttack:
		return b.Attack
	case ActionDash:
		return b.Dash
	default:
		return false
	}
}

// Snapshot pairs the current step's buttons with the previous step's so
// states can ask for edges. It is taken once at the start of a step and
// every system in that step sees the same values.
type Snapshot struct {
	cur  Buttons
	prev Buttons
}

// MakeSnapshot builds a snapshot from the current and previous button
// states.
func MakeSnapshot(cur, prev Buttons) Snapshot {
	return Snapshot{cur: cur, prev: prev}
}

// Buttons returns the current step's raw button states.
func (s Snapshot) Buttons() Buttons {
	return s.cur
}

// Pressed reports whether the action is held this step.
func (s Snapshot) Pressed(a Action) bool {
	return s.cur.get(a)
}

// JustPressed reports whether the action went down this step.
func (s Snapshot) JustPressed(a Action) bool {
	return s.cur.get(a) && !s.prev.get(a)
}

// JustReleased reports whether the action went up this step.
func (s Snapshot) JustReleased(a Action) bool {
	return !s.cur.get(a) && s.prev.get(a)
}

// HorizontalAxis returns -1, 0 or +1 from the left/right actions.
// Opposite directions held together cancel out.
func (s Snapshot) HorizontalAxis() float64 {
	axis := 0.0
	if s.cur.Left {
		axis -= 1
	}
	if s.cur.Right {
		axis += 1
	}
	return axis
}

// Bindings maps logical actions to the physical keys that trigger them.
// An action is down when any of its keys is down.
type Bindings map[Action][]ebiten.Key

// DefaultBindings returns the arrow-key plus WASD layout.
func DefaultBindings() Bindings {
	return Bindings{
		ActionLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
		ActionRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
		ActionJump:   {ebiten.KeySpace, ebiten.KeyW},
		ActionAttack: {ebiten.KeyZ, ebiten.KeyJ},
		ActionDash:   {ebiten.KeyShiftLeft, ebiten.KeyC},
	}
}

// Keyboard samples ebiten key state into button snapshots. It remembers
// the previous step's buttons so the snapshot can answer edge queries.
type Keyboard struct {
	bindings Bindings
	prev     Buttons
}

// NewKeyboard creates a keyboard sampler with the default bindings.
func NewKeyboard() *Keyboard {
	return &Keyboard{bindings: DefaultBindings()}
}

// NewKeyboardWithBindings creates a keyboard sampler with custom bindings.
func NewKeyboardWithBindings(b Bindings) *Keyboard {
	return &Keyboard{bindings: b}
}

func (k *Keyboard) anyDown(a Action) bool {
	for _, key := range k.bindings[a] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// Read samples the current button states without advancing the
// previous-state memory.
func (k *Keyboard) Read() Buttons {
	return Buttons{
		Left:   k.anyDown(ActionLeft),
		Right:  k.anyDown(ActionRight),
		Jump:   k.anyDown(ActionJump),
		Attack: k.anyDown(ActionAttack),
		Dash:   k.anyDown(ActionDash),
	}
}

// Poll samples the keyboard and returns the snapshot for this step,
// advancing the previous-state memory.
func (k *Keyboard) Poll() Snapshot {
	cur := k.Read()
	snap := MakeSnapshot(cur, k.prev)
	k.prev = cur
	return snap
}

// Reset clears the previous-state memory: the next poll diffs against a
// blank slate, so keys already held count as newly pressed. Called when
// the simulation is reset or a replay starts.
func (k *Keyboard) Reset() {
	k.prev = Buttons{}
}
