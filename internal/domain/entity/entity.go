// Package entity holds the simulated game objects: physics bodies, the
// player, enemies, and loaded stages. Entities keep two rectangles, a
// visual rect for rendering and a smaller collision box for physics and
// combat; the collision box's bottom-center always tracks the visual
// rect's bottom-center.
package entity

import "github.com/seojinpark/blade/internal/domain/geom"

// ID is a unique identifier for an entity within a world.
type ID uint32

// Entity is the shared state of every simulated object.
type Entity struct {
	Body

	ID     ID
	Pos    geom.Vec2 // top-left of the visual rect
	Rect   geom.Rect // visual bounds (render space)
	Hitbox geom.Rect // collision box (physics/combat space)

	Health       int
	MaxHealth    int
	FacingRight  bool
	Invulnerable bool
	InvulnTimer  float64
	Alive        bool

	// Optional hooks fired by the damage path.
	OnDamaged func(amount int)
	OnDeath   func()
}

// NewEntity creates an entity at (x, y) with the given visual size and
// collision box size. The collision box starts pinned to the visual
// rect's bottom-center.
func NewEntity(id ID, x, y, w, h, boxW, boxH float64) Entity {
	e := Entity{
		ID:          id,
		Pos:         geom.Vec2{X: x, Y: y},
		Rect:        geom.NewRect(x, y, w, h),
		Hitbox:      geom.Rect{W: boxW, H: boxH},
		FacingRight: true,
		Alive:       true,
	}
	e.SyncBoxes()
	return e
}

// SyncBoxes re-derives the rectangles from Pos: the visual rect's top-left
// follows Pos, and the collision box pins to the visual rect's
// bottom-center. Call after any direct position write.
func (e *Entity) SyncBoxes() {
	e.Rect.X = e.Pos.X
	e.Rect.Y = e.Pos.Y
	mb := e.Rect.MidBottom()
	e.Hitbox.SetMidBottom(mb.X, mb.Y)
}

// SyncFromHitbox is the inverse of SyncBoxes, used after the collision
// resolver has moved the collision box: the visual rect's bottom-center
// follows the box, and Pos follows the visual rect.
func (e *Entity) SyncFromHitbox() {
	mb := e.Hitbox.MidBottom()
	e.Rect.SetMidBottom(mb.X, mb.Y)
	e.Pos = geom.Vec2{X: e.Rect.X, Y: e.Rect.Y}
}

// SetPos moves the entity and re-syncs both rectangles.
func (e *Entity) SetPos(x, y float64) {
	e.Pos = geom.Vec2{X: x, Y: y}
	e.SyncBoxes()
}

// TakeDamage applies damage unless the entity is invulnerable or already
// dead. Health clamps at zero; reaching zero marks the entity dead and
// fires OnDeath once. Returns true when the hit was lethal.
//
// The base damage path never grants invulnerability; that policy belongs
// to the concrete entity's damage hook.
func (e *Entity) TakeDamage(amount int) bool {
	if !e.Alive || e.Invulnerable {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
	if e.OnDamaged != nil {
		e.OnDamaged(amount)
	}
	if e.Health == 0 {
		e.Alive = false
		if e.OnDeath != nil {
			e.OnDeath()
		}
		return true
	}
	return false
}

// Heal restores health, clamped to MaxHealth. Dead entities cannot heal.
func (e *Entity) Heal(amount int) {
	if !e.Alive || amount < 0 {
		return
	}
	e.Health += amount
	if e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
}

// SetInvulnerable starts an invulnerability window.
func (e *Entity) SetInvulnerable(duration float64) {
	e.Invulnerable = true
	e.InvulnTimer = duration
}

// TickInvulnerability counts the invulnerability window down.
func (e *Entity) TickInvulnerability(dt float64) {
	if !e.Invulnerable {
		return
	}
	e.InvulnTimer -= dt
	if e.InvulnTimer <= 0 {
		e.Invulnerable = false
		e.InvulnTimer = 0
	}
}
