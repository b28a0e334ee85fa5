package system

import (
	"math"

	"github.com/seojinpark/blade/internal/domain/entity"
	"github.com/seojinpark/blade/internal/domain/geom"
)

// Enemy swing pacing and hitbox size. Shared by every enemy kind; the
// per-kind tuning (speeds, ranges, damage) lives in the entity config.
const (
	enemyWindup       = 0.25
	enemyActiveWindow = 0.15
	enemyCooldown     = 0.6

	enemySwingWidth  = 40.0
	enemySwingHeight = 30.0
)

// AI drives enemy behaviors: patrol around the spawn anchor, chase on
// sight, swing within reach, flinch on damage. A tag switch per enemy,
// no pathfinding.
type AI struct {
	resolver *Resolver
}

// NewAI creates an AI system using the resolver for line-of-sight
// queries.
func NewAI(resolver *Resolver) *AI {
	return &AI{resolver: resolver}
}

// Update advances one enemy for this step and returns the horizontal
// drive axis for the physics step. Contact flags read here are the
// previous step's resolution.
func (a *AI) Update(en *entity.Enemy, player *entity.Player, dt float64) float64 {
	switch en.Behavior {
	case entity.BehaviorPatrol:
		return a.patrol(en, player)
	case entity.BehaviorChase:
		return a.chase(en, player)
	case entity.BehaviorAttack:
		return a.attack(en, player, dt)
	case entity.BehaviorHurt:
		return a.hurt(en)
	default:
		en.Velocity.X = 0
		return 0
	}
}

// canSee reports whether the player is within detect range with a clear
// line of sight, center to center.
func (a *AI) canSee(en *entity.Enemy, player *entity.Player) bool {
	if player == nil || !player.Alive {
		return false
	}
	from := en.Hitbox.Center()
	to := player.Hitbox.Center()
	if to.Sub(from).Length() > en.DetectRange {
		return false
	}
	return a.resolver.LineOfSight(from, to)
}

func (a *AI) inAttackRange(en *entity.Enemy, player *entity.Player) bool {
	if player == nil || !player.Alive {
		return false
	}
	return math.Abs(player.Hitbox.CenterX()-en.Hitbox.CenterX()) <= en.AttackRange
}

// patrol walks between the spawn anchor's patrol bounds, reversing on
// walls and bounds, until the player comes into sight.
func (a *AI) patrol(en *entity.Enemy, player *entity.Player) float64 {
	if a.canSee(en, player) {
		en.Behavior = entity.BehaviorChase
		return a.chase(en, player)
	}

	x := en.Pos.X
	if en.PatrolDir > 0 && (en.OnWallRight || x >= en.PatrolOriginX+en.PatrolRange) {
		en.PatrolDir = -1
	} else if en.PatrolDir < 0 && (en.OnWallLeft || x <= en.PatrolOriginX-en.PatrolRange) {
		en.PatrolDir = 1
	}

	en.Velocity.X = en.PatrolDir * en.Speed
	en.FacingRight = en.PatrolDir > 0
	return en.PatrolDir
}

// chase runs toward the player while sight holds, handing off to attack
// within reach and back to patrol when sight is lost.
func (a *AI) chase(en *entity.Enemy, player *entity.Player) float64 {
	if !a.canSee(en, player) {
		en.Behavior = entity.BehaviorPatrol
		return a.patrol(en, player)
	}

	dx := player.Hitbox.CenterX() - en.Hitbox.CenterX()
	if math.Abs(dx) <= en.AttackRange {
		en.Behavior = entity.BehaviorAttack
		en.WindupTimer = enemyWindup
		en.Velocity.X = 0
		en.FacingRight = dx >= 0
		return 0
	}

	dir := 1.0
	if dx < 0 {
		dir = -1
	}
	en.Velocity.X = dir * en.ChaseSpeed
	en.FacingRight = dir > 0
	return dir
}

// attack runs the swing phases: windup, a brief active window exposing
// the contact hitbox, then cooldown. The enemy stands its ground and
// keeps its facing for the whole swing.
func (a *AI) attack(en *entity.Enemy, player *entity.Player, dt float64) float64 {
	en.Velocity.X = 0

	switch {
	case en.WindupTimer > 0:
		en.WindupTimer -= dt
		if en.WindupTimer <= 0 {
			en.WindupTimer = 0
			en.ActiveTimer = enemyActiveWindow
			en.SetAttackHitbox(enemySwingBox(en))
		}
	case en.ActiveTimer > 0:
		en.ActiveTimer -= dt
		if en.ActiveTimer <= 0 {
			en.ActiveTimer = 0
			en.ClearAttackHitbox()
			en.CooldownTimer = enemyCooldown
		}
	case en.CooldownTimer > 0:
		en.CooldownTimer -= dt
		if en.CooldownTimer <= 0 {
			en.CooldownTimer = 0
			if a.inAttackRange(en, player) {
				en.FacingRight = player.Hitbox.CenterX() >= en.Hitbox.CenterX()
				en.WindupTimer = enemyWindup
			} else {
				en.Behavior = entity.BehaviorChase
			}
		}
	default:
		en.WindupTimer = enemyWindup
	}
	return 0
}

// hurt holds the flinch until the hurt timer, ticked by the enemy's own
// Tick, runs out.
func (a *AI) hurt(en *entity.Enemy) float64 {
	en.Velocity.X = 0
	if en.HurtTimer <= 0 {
		en.Behavior = entity.BehaviorChase
	}
	return 0
}

// enemySwingBox positions the contact hitbox flush against the leading
// edge of the enemy's collision box, vertically centered on it.
func enemySwingBox(en *entity.Enemy) geom.Rect {
	box := geom.Rect{W: enemySwingWidth, H: enemySwingHeight}
	if en.FacingRight {
		box.X = en.Hitbox.Right()
	} else {
		box.X = en.Hitbox.Left() - enemySwingWidth
	}
	box.Y = en.Hitbox.CenterY() - enemySwingHeight/2
	return box
}
