package system

import (
	"fmt"

	"github.com/seojinpark/blade/internal/domain/entity"
)

// StateID names a player state. The identifiers double as the default
// animation tags the renderer keys off.
type StateID string

const (
	StateIdle      StateID = "idle"
	StateRun       StateID = "run"
	StateJump      StateID = "jump"
	StateFall      StateID = "fall"
	StateWallSlide StateID = "wall_slide"
	StateWallClimb StateID = "wall_climb"
	StateDash      StateID = "dash"
	StateAttack    StateID = "attack"
)

// State is one node of the player state machine. Update returns the next
// state's identifier, or empty to stay. States never swap the machine's
// current state themselves; the machine is the only writer.
type State interface {
	ID() StateID
	AnimationTag() string
	Enter(p *entity.Player)
	Update(p *entity.Player, in Snapshot, dt float64) StateID
	Exit(p *entity.Player)
}

// Machine owns the player's active state and performs transitions: exit
// of the old state, then enter of the new, atomically within one step.
type Machine struct {
	states  map[StateID]State
	current State
}

// NewMachine creates a machine from the given states. No state is active
// until Start runs.
func NewMachine(states ...State) *Machine {
	m := &Machine{states: make(map[StateID]State, len(states))}
	for _, s := range states {
		m.states[s.ID()] = s
	}
	return m
}

// Start enters the initial state.
func (m *Machine) Start(p *entity.Player, initial StateID) error {
	s, ok := m.states[initial]
	if !ok {
		return fmt.Errorf("unknown initial state %q", initial)
	}
	m.current = s
	s.Enter(p)
	p.AnimTag = s.AnimationTag()
	return nil
}

// Current returns the active state's identifier, or empty before Start.
func (m *Machine) Current() StateID {
	if m.current == nil {
		return ""
	}
	return m.current.ID()
}

// CurrentState returns the active state, or nil before Start.
func (m *Machine) CurrentState() State {
	return m.current
}

// Update runs the active state for one step and performs at most one
// transition. A state returning an unregistered identifier is a broken
// transition table: the error is returned rather than ignored, and the
// machine keeps its current state.
func (m *Machine) Update(p *entity.Player, in Snapshot, dt float64) error {
	if m.current == nil {
		return fmt.Errorf("state machine not started")
	}
	next := m.current.Update(p, in, dt)
	if next != "" && next != m.current.ID() {
		target, ok := m.states[next]
		if !ok {
			return fmt.Errorf("unknown state %q requested by %q", next, m.current.ID())
		}
		m.current.Exit(p)
		m.current = target
		target.Enter(p)
	}
	p.AnimTag = m.current.AnimationTag()
	return nil
}

// Force swaps to the given state regardless of what the active state
// wants, running the usual exit/enter pair. Used on respawn and level
// transitions.
func (m *Machine) Force(p *entity.Player, id StateID) error {
	target, ok := m.states[id]
	if !ok {
		return fmt.Errorf("unknown state %q", id)
	}
	if m.current != nil {
		m.current.Exit(p)
	}
	m.current = target
	target.Enter(p)
	p.AnimTag = target.AnimationTag()
	return nil
}
