package system

import (
	"github.com/seojinpark/blade/internal/domain/entity"
	"github.com/seojinpark/blade/internal/infrastructure/config"
)

// DefaultStates builds the full player state set from the tuning document.
func DefaultStates(cfg *config.PhysicsConfig) []State {
	return []State{
		NewIdleState(cfg),
		NewRunState(cfg),
		NewJumpState(cfg),
		NewFallState(cfg),
		NewWallSlideState(cfg),
		NewWallClimbState(cfg),
		NewDashState(cfg),
		NewAttackState(),
	}
}

// wallDir returns -1 for a left wall contact, +1 for a right one, 0 for
// neither. With both walls touched the left one wins.
func wallDir(p *entity.Player) float64 {
	switch {
	case p.OnWallLeft:
		return -1
	case p.OnWallRight:
		return 1
	default:
		return 0
	}
}

// pushingIntoWall reports whether the horizontal axis presses against a
// touched wall. Wall sliding requires deliberate input, not just contact.
func pushingIntoWall(p *entity.Player, axis float64) bool {
	return (p.OnWallLeft && axis < 0) || (p.OnWallRight && axis > 0)
}

// airDrive applies horizontal air control: a reduced run speed while any
// direction is held. No input keeps the current momentum, so wall-jump
// kicks survive until the player steers.
func airDrive(p *entity.Player, cfg *config.PhysicsConfig, axis float64) {
	if axis == 0 {
		return
	}
	p.Velocity.X = axis * cfg.Movement.RunSpeed * cfg.Movement.AirControl
	p.FacingRight = axis > 0
}

// IdleState is the initial state: grounded, no horizontal drive.
type IdleState struct {
	cfg *config.PhysicsConfig
}

func NewIdleState(cfg *config.PhysicsConfig) *IdleState { return &IdleState{cfg: cfg} }

func (s *IdleState) ID() StateID          { return StateIdle }
func (s *IdleState) AnimationTag() string { return "idle" }

func (s *IdleState) Enter(p *entity.Player) {
	p.Velocity.X = 0
}

func (s *IdleState) Update(p *entity.Player, in Snapshot, dt float64) StateID {
	if in.JustPressed(ActionDash) {
		return StateDash
	}
	if in.JustPressed(ActionJump) && p.OnGround {
		return StateJump
	}
	if in.JustPressed(ActionAttack) {
		return StateAttack
	}
	if in.HorizontalAxis() != 0 {
		return StateRun
	}
	if !p.OnGround {
		return StateFall
	}
	return ""
}

func (s *IdleState) Exit(p *entity.Player) {}

// RunState drives grounded horizontal movement.
type RunState struct {
	cfg *config.PhysicsConfig
}

func NewRunState(cfg *config.PhysicsConfig) *RunState { return &RunState{cfg: cfg} }

func (s *RunState) ID() StateID          { return StateRun }
func (s *RunState) AnimationTag() string { return "run" }

func (s *RunState) Enter(p *entity.Player) {}

func (s *RunState) Update(p *entity.Player, in Snapshot, dt float64) StateID {
	axis := in.HorizontalAxis()
	if axis != 0 {
		p.Velocity.X = axis * s.cfg.Movement.RunSpeed
		p.FacingRight = axis > 0
	}

	if in.JustPressed(ActionDash) {
		return StateDash
	}
	if in.JustPressed(ActionAttack) {
		return StateAttack
	}
	if in.JustPressed(ActionJump) && p.OnGround {
		return StateJump
	}
	if axis == 0 && p.OnGround {
		return StateIdle
	}
	if !p.OnGround {
		return StateFall
	}
	return ""
}

func (s *RunState) Exit(p *entity.Player) {}

// JumpState is the rising half of a jump.
type JumpState struct {
	cfg *config.PhysicsConfig
}

func NewJumpState(cfg *config.PhysicsConfig) *JumpState { return &JumpState{cfg: cfg} }

func (s *JumpState) ID() StateID          { return StateJump }
func (s *JumpState) AnimationTag() string { return "jump" }

// Enter applies the upward impulse. The ground flag clears immediately so
// gravity acts this same step instead of waiting for the next resolution.
func (s *JumpState) Enter(p *entity.Player) {
	p.Velocity.Y = s.cfg.Jump.Impulse
	p.OnGround = false
}

func (s *JumpState) Update(p *entity.Player, in Snapshot, dt float64) StateID {
	axis := in.HorizontalAxis()
	airDrive(p, s.cfg, axis)

	// Variable jump height: releasing jump while still rising cuts the
	// remaining impulse.
	if in.JustReleased(ActionJump) && p.Velocity.Y < 0 {
		p.Velocity.Y *= s.cfg.Jump.VariableCutoff
	}

	if in.JustPressed(ActionDash) {
		return StateDash
	}
	if in.JustPressed(ActionAttack) {
		return StateAttack
	}
	if p.OnWall() && pushingIntoWall(p, axis) {
		return StateWallSlide
	}
	if p.Velocity.Y >= 0 {
		return StateFall
	}
	if p.OnGround {
		if axis != 0 {
			return StateRun
		}
		return StateIdle
	}
	return ""
}

func (s *JumpState) Exit(p *entity.Player) {}

// FallState is descent: either the back half of a jump or walking off a
// ledge.
type FallState struct {
	cfg *config.PhysicsConfig
}

func NewFallState(cfg *config.PhysicsConfig) *FallState { return &FallState{cfg: cfg} }

func (s *FallState) ID() StateID          { return StateFall }
func (s *FallState) AnimationTag() string { return "fall" }

func (s *FallState) Enter(p *entity.Player) {}

func (s *FallState) Update(p *entity.Player, in Snapshot, dt float64) StateID {
	axis := in.HorizontalAxis()
	airDrive(p, s.cfg, axis)

	if in.JustPressed(ActionDash) {
		return StateDash
	}
	if in.JustPressed(ActionAttack) {
		return StateAttack
	}
	if p.OnWall() && pushingIntoWall(p, axis) {
		return StateWallSlide
	}
	if p.OnGround {
		if axis != 0 {
			return StateRun
		}
		return StateIdle
	}
	return ""
}

func (s *FallState) Exit(p *entity.Player) {}

// WallSlideState caps descent while the player presses into a wall.
type WallSlideState struct {
	cfg *config.PhysicsConfig
}

func NewWallSlideState(cfg *config.PhysicsConfig) *WallSlideState {
	return &WallSlideState{cfg: cfg}
}

func (s *WallSlideState) ID() StateID          { return StateWallSlide }
func (s *WallSlideState) AnimationTag() string { return "wall_slide" }

func (s *WallSlideState) Enter(p *entity.Player) {
	if p.Velocity.Y > s.cfg.Wall.SlideSpeed {
		p.Velocity.Y = s.cfg.Wall.SlideSpeed
	}
}

func (s *WallSlideState) Update(p *entity.Player, in Snapshot, dt float64) StateID {
	if p.Velocity.Y > s.cfg.Wall.SlideSpeed {
		p.Velocity.Y = s.cfg.Wall.SlideSpeed
	}

	if in.JustPressed(ActionDash) {
		return StateDash
	}
	// Wall jump: kick away from the wall, then let JumpState apply the
	// vertical impulse.
	if in.JustPressed(ActionJump) {
		if dir := wallDir(p); dir != 0 {
			p.Velocity.X = -dir * s.cfg.Jump.WallKick
			p.FacingRight = dir < 0
		}
		return StateJump
	}
	if in.Pressed(ActionJump) && p.HasStamina() {
		return StateWallClimb
	}
	if !p.OnWall() || !pushingIntoWall(p, in.HorizontalAxis()) {
		return StateFall
	}
	if p.OnGround {
		return StateIdle
	}
	return ""
}

func (s *WallSlideState) Exit(p *entity.Player) {}

// WallClimbState moves the player up a wall while jump is held, paying
// stamina for every second of climb.
type WallClimbState struct {
	cfg *config.PhysicsConfig
}

func NewWallClimbState(cfg *config.PhysicsConfig) *WallClimbState {
	return &WallClimbState{cfg: cfg}
}

func (s *WallClimbState) ID() StateID          { return StateWallClimb }
func (s *WallClimbState) AnimationTag() string { return "wall_climb" }

func (s *WallClimbState) Enter(p *entity.Player) {}

func (s *WallClimbState) Update(p *entity.Player, in Snapshot, dt float64) StateID {
	p.Velocity.Y = -s.cfg.Wall.SlideSpeed * s.cfg.Wall.ClimbFactor
	p.DrainStamina(s.cfg.Stamina.DrainRate * dt)

	if !p.OnWall() {
		return StateFall
	}
	if !in.Pressed(ActionJump) || !p.HasStamina() {
		return StateWallSlide
	}
	if p.OnGround {
		return StateIdle
	}
	return ""
}

func (s *WallClimbState) Exit(p *entity.Player) {}

// DashState overrides velocity with a fixed burst for a fixed duration.
// Input is ignored until the timer runs out, and the dash carries
// i-frames for its whole duration.
type DashState struct {
	cfg   *config.PhysicsConfig
	timer float64
	dir   float64
}

func NewDashState(cfg *config.PhysicsConfig) *DashState { return &DashState{cfg: cfg} }

func (s *DashState) ID() StateID          { return StateDash }
func (s *DashState) AnimationTag() string { return "dash" }

func (s *DashState) Enter(p *entity.Player) {
	s.timer = s.cfg.Dash.Duration
	s.dir = 1
	if !p.FacingRight {
		s.dir = -1
	}
	p.Velocity.X = s.dir * s.cfg.Dash.Speed
	p.Velocity.Y = 0
	p.GravityEnabled = false
	p.SetInvulnerable(s.cfg.Dash.Duration)
}

func (s *DashState) Update(p *entity.Player, in Snapshot, dt float64) StateID {
	// Re-assert every step so collisions and friction cannot erode the
	// dash.
	p.Velocity.X = s.dir * s.cfg.Dash.Speed
	p.Velocity.Y = 0

	s.timer -= dt
	if s.timer > 0 {
		return ""
	}
	if p.OnGround {
		if in.HorizontalAxis() != 0 {
			return StateRun
		}
		return StateIdle
	}
	return StateFall
}

func (s *DashState) Exit(p *entity.Player) {
	p.GravityEnabled = true
}
