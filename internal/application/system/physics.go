package system

import (
	"github.com/seojinpark/blade/internal/domain/entity"
)

// Physics advances one entity's body per step: gravity, friction, contact
// flag reset, then collision resolution through the shared resolver.
type Physics struct {
	friction float64
	resolver *Resolver
}

// NewPhysics creates a physics system using the given friction
// coefficient and resolver.
func NewPhysics(friction float64, resolver *Resolver) *Physics {
	return &Physics{friction: friction, resolver: resolver}
}

// Resolver returns the resolver this system resolves against.
func (p *Physics) Resolver() *Resolver {
	return p.resolver
}

// Step integrates the entity's body for one fixed step and resolves it
// against the tile set. axis is the horizontal drive for this step;
// friction only applies when nothing is driving, so it never fights a
// state that writes horizontal velocity directly.
//
// Contact flags reset after integration and before resolution: gravity
// and friction read the previous step's contacts, the resolver writes
// this step's. The resting pass after resolution keeps flags alive for
// flush contact Resolve cannot see, such as standing still on a floor
// with gravity gated off.
func (p *Physics) Step(e *entity.Entity, axis, dt float64) {
	e.ApplyGravity(dt)
	if axis == 0 {
		e.ApplyFriction(p.friction, dt)
	}
	e.ResetContactFlags()
	e.Hitbox = p.resolver.Resolve(e.Hitbox, &e.Body, dt)
	p.resolver.RestingContacts(e.Hitbox, &e.Body)
	e.SyncFromHitbox()
}
