package entity

import (
	"math"

	"github.com/seojinpark/blade/internal/domain/geom"
)

// frictionEpsilon is the horizontal speed below which friction snaps the
// velocity to exactly zero instead of decaying it forever.
const frictionEpsilon = 0.1

// Body holds the physics state of an entity. Velocity is in pixels per
// frame at the 60Hz reference rate; accelerations multiply by dt*60 so the
// same tuning values behave identically at other frame rates.
type Body struct {
	Velocity       geom.Vec2
	Gravity        float64
	MaxFallSpeed   float64
	GravityEnabled bool

	// Contact flags. Write-only outputs of the collision resolver: the
	// resolver only ever sets them, so ResetContactFlags must run before
	// each resolution pass.
	OnGround    bool
	OnCeiling   bool
	OnWallLeft  bool
	OnWallRight bool
}

// NewBody returns a body with gravity enabled.
func NewBody(gravity, maxFallSpeed float64) Body {
	return Body{
		Gravity:        gravity,
		MaxFallSpeed:   maxFallSpeed,
		GravityEnabled: true,
	}
}

// ApplyGravity accelerates the body downward, clamped to MaxFallSpeed.
// No-op while ground-contacted or while gravity is disabled.
func (b *Body) ApplyGravity(dt float64) {
	if !b.GravityEnabled || b.OnGround {
		return
	}
	b.Velocity.Y += b.Gravity * dt * 60
	if b.Velocity.Y > b.MaxFallSpeed {
		b.Velocity.Y = b.MaxFallSpeed
	}
}

// ApplyFriction decays horizontal velocity while ground-contacted. Speeds
// below a small epsilon snap to zero.
func (b *Body) ApplyFriction(coefficient, dt float64) {
	if !b.OnGround {
		return
	}
	b.Velocity.X *= 1 - coefficient*dt*60
	if math.Abs(b.Velocity.X) < frictionEpsilon {
		b.Velocity.X = 0
	}
}

// ResetContactFlags clears all four contact flags.
func (b *Body) ResetContactFlags() {
	b.OnGround = false
	b.OnCeiling = false
	b.OnWallLeft = false
	b.OnWallRight = false
}

// OnWall reports contact with a wall on either side.
func (b *Body) OnWall() bool {
	return b.OnWallLeft || b.OnWallRight
}
