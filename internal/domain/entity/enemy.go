package entity

import "github.com/seojinpark/blade/internal/domain/geom"

// Behavior identifies an enemy's current AI behavior.
type Behavior int

const (
	BehaviorPatrol Behavior = iota
	BehaviorChase
	BehaviorAttack
	BehaviorHurt
	BehaviorDead
)

// String returns the behavior name.
func (b Behavior) String() string {
	switch b {
	case BehaviorPatrol:
		return "patrol"
	case BehaviorChase:
		return "chase"
	case BehaviorAttack:
		return "attack"
	case BehaviorHurt:
		return "hurt"
	case BehaviorDead:
		return "dead"
	default:
		return "unknown"
	}
}

// hurtFlinchDuration is how long a surviving enemy flinches after a hit.
const hurtFlinchDuration = 0.2

// EnemyStats carries the per-kind tuning an enemy is constructed from.
type EnemyStats struct {
	Width, Height       float64
	BoxWidth, BoxHeight float64
	MaxHealth           int
	Speed               float64 // patrol speed
	ChaseSpeed          float64
	DetectRange         float64
	AttackRange         float64
	PatrolRange         float64
	Damage              int
	HurtInvuln          float64
}

// Enemy is a simple patrol/chase opponent driven by the AI system. It
// shares the player's body, resolver and physics step.
type Enemy struct {
	Entity

	Kind     string
	Behavior Behavior

	// Patrol anchor and walk direction (+1 right, -1 left).
	PatrolOriginX float64
	PatrolRange   float64
	PatrolDir     float64

	Speed       float64
	ChaseSpeed  float64
	DetectRange float64
	AttackRange float64
	Damage      int
	HurtInvuln  float64

	// Swing phases, advanced by the AI system. The contact hitbox is
	// exposed only while ActiveTimer runs.
	WindupTimer   float64
	ActiveTimer   float64
	CooldownTimer float64
	HurtTimer     float64

	attackBox    geom.Rect
	attackActive bool
}

// NewEnemy creates an enemy of the given kind at (x, y), patrolling around
// its spawn point.
func NewEnemy(id ID, kind string, x, y float64, stats EnemyStats) *Enemy {
	en := &Enemy{
		Entity:        NewEntity(id, x, y, stats.Width, stats.Height, stats.BoxWidth, stats.BoxHeight),
		Kind:          kind,
		Behavior:      BehaviorPatrol,
		PatrolOriginX: x,
		PatrolRange:   stats.PatrolRange,
		PatrolDir:     1,
		Speed:         stats.Speed,
		ChaseSpeed:    stats.ChaseSpeed,
		DetectRange:   stats.DetectRange,
		AttackRange:   stats.AttackRange,
		Damage:        stats.Damage,
		HurtInvuln:    stats.HurtInvuln,
	}
	en.Health = stats.MaxHealth
	en.MaxHealth = stats.MaxHealth
	return en
}

// TakeDamage applies damage through the base path. A surviving enemy
// flinches into the hurt behavior with a brief invulnerability window and
// drops any in-progress swing.
func (en *Enemy) TakeDamage(amount int) bool {
	if !en.Alive || en.Invulnerable {
		return false
	}
	died := en.Entity.TakeDamage(amount)
	if died {
		en.Behavior = BehaviorDead
		en.ClearAttackHitbox()
		return true
	}
	en.SetInvulnerable(en.HurtInvuln)
	en.Behavior = BehaviorHurt
	en.HurtTimer = hurtFlinchDuration
	en.WindupTimer = 0
	en.ActiveTimer = 0
	en.ClearAttackHitbox()
	return false
}

// SetAttackHitbox exposes a contact hitbox for the active swing window.
func (en *Enemy) SetAttackHitbox(box geom.Rect) {
	en.attackBox = box
	en.attackActive = true
}

// ClearAttackHitbox withdraws the contact hitbox.
func (en *Enemy) ClearAttackHitbox() {
	en.attackActive = false
}

// ActiveAttackHitbox returns the contact hitbox while a swing is active.
func (en *Enemy) ActiveAttackHitbox() (geom.Rect, bool) {
	if !en.attackActive {
		return geom.Rect{}, false
	}
	return en.attackBox, true
}

// AttackDamage returns the damage of the enemy's swing.
func (en *Enemy) AttackDamage() int {
	return en.Damage
}

// Tick advances the enemy's per-step timers.
func (en *Enemy) Tick(dt float64) {
	en.TickInvulnerability(dt)
	if en.HurtTimer > 0 {
		en.HurtTimer -= dt
		if en.HurtTimer < 0 {
			en.HurtTimer = 0
		}
	}
}
