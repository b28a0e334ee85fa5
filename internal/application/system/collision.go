package system

import (
	"math"

	"github.com/seojinpark/blade/internal/domain/entity"
	"github.com/seojinpark/blade/internal/domain/geom"
)

// defaultRayStep is the raycast sampling increment in pixels when no
// explicit step is configured.
const defaultRayStep = 4.0

// contactEpsilon is the widest gap between a box edge and a tile edge
// that still counts as touching.
const contactEpsilon = 0.01

// Resolver resolves moving collision boxes against a static tile set and
// answers line-of-sight queries. The tile set is read-only during a step
// and only ever swapped wholesale, on level load.
type Resolver struct {
	tiles   []geom.Rect
	rayStep float64
}

// NewResolver creates a resolver with the given raycast step size.
// Non-positive steps fall back to the default.
func NewResolver(rayStep float64) *Resolver {
	if rayStep <= 0 {
		rayStep = defaultRayStep
	}
	return &Resolver{rayStep: rayStep}
}

// SetTiles swaps in a new solid tile set.
func (r *Resolver) SetTiles(tiles []geom.Rect) {
	r.tiles = tiles
}

// Tiles returns the current solid tile set.
func (r *Resolver) Tiles() []geom.Rect {
	return r.tiles
}

// Resolve moves the collision box by the body's velocity and resolves tile
// overlaps one axis at a time, horizontal before vertical. The order
// matters: resolving both axes at once catches the box on tile seams and
// snags inside corners.
//
// On each axis the box first moves by the full velocity component, then
// every overlapping tile snaps the box flush against the approached edge,
// sets the matching contact flag and zeroes that velocity component. The
// approach direction is captured before the loop, so when a fast box lands
// overlapping several tiles each one clamps the already-clamped box and
// the most restrictive snap wins.
//
// Velocity is in pixels per frame at 60Hz, so displacement scales by
// dt*60. Returns the updated box; the caller re-syncs entity rectangles
// from it.
func (r *Resolver) Resolve(box geom.Rect, body *entity.Body, dt float64) geom.Rect {
	dx := body.Velocity.X
	box.X += dx * dt * 60
	for _, tile := range r.tiles {
		if !box.Overlaps(tile) {
			continue
		}
		if dx > 0 {
			box.SetRight(tile.Left())
			body.OnWallRight = true
		} else if dx < 0 {
			box.SetLeft(tile.Right())
			body.OnWallLeft = true
		}
		body.Velocity.X = 0
	}

	dy := body.Velocity.Y
	box.Y += dy * dt * 60
	for _, tile := range r.tiles {
		if !box.Overlaps(tile) {
			continue
		}
		if dy > 0 {
			box.SetBottom(tile.Top())
			body.OnGround = true
		} else if dy < 0 {
			box.SetTop(tile.Bottom())
			body.OnCeiling = true
		}
		body.Velocity.Y = 0
	}

	return box
}

// RestingContacts sets contact flags for flush, zero-velocity contact.
// Resolve flags only the overlaps it corrects, and a snapped box stops
// overlapping the tile it rests against, so a body standing on a floor
// or holding a wall would lose its contact the step after it connects.
// This pass restores the flag as long as the touched edge stays flush.
// Only the stationary axis is probed; a moving box is Resolve's job.
func (r *Resolver) RestingContacts(box geom.Rect, body *entity.Body) {
	probeY := body.Velocity.Y == 0
	probeX := body.Velocity.X == 0
	for _, tile := range r.tiles {
		overlapX := box.Right() > tile.Left() && box.Left() < tile.Right()
		overlapY := box.Bottom() > tile.Top() && box.Top() < tile.Bottom()
		if probeY && overlapX && math.Abs(box.Bottom()-tile.Top()) <= contactEpsilon {
			body.OnGround = true
		}
		if probeX && overlapY {
			if math.Abs(box.Right()-tile.Left()) <= contactEpsilon {
				body.OnWallRight = true
			}
			if math.Abs(box.Left()-tile.Right()) <= contactEpsilon {
				body.OnWallLeft = true
			}
		}
	}
}

// Raycast steps from origin along dir in fixed increments, testing each
// sample point against the tile set, and returns the first hit point and
// the tile containing it. The origin itself is tested before the first
// step. A zero direction or an exhausted maxDist returns ok=false.
func (r *Resolver) Raycast(origin, dir geom.Vec2, maxDist float64) (geom.Vec2, geom.Rect, bool) {
	if dir.Length() == 0 {
		return geom.Vec2{}, geom.Rect{}, false
	}

	step := dir.Normalized().Scale(r.rayStep)
	current := origin
	for dist := 0.0; dist < maxDist; dist += r.rayStep {
		for _, tile := range r.tiles {
			if tile.ContainsPoint(current) {
				return current, tile, true
			}
		}
		current = current.Add(step)
	}

	return geom.Vec2{}, geom.Rect{}, false
}

// LineOfSight reports whether the segment from origin toward target is
// free of solid tiles. A hit at or before the target distance blocks
// sight.
func (r *Resolver) LineOfSight(origin, target geom.Vec2) bool {
	delta := target.Sub(origin)
	dist := delta.Length()
	if dist == 0 {
		return true
	}
	_, _, hit := r.Raycast(origin, delta, dist)
	return !hit
}
