package system

import (
	"github.com/seojinpark/blade/internal/domain/entity"
	"github.com/seojinpark/blade/internal/domain/geom"
)

// AttackSource is what the combat manager needs from an attacking state:
// the live hitbox, its damage, and the per-swing hit-target set that
// keeps one swing from hitting the same target twice.
type AttackSource interface {
	ActiveHitbox() (geom.Rect, bool)
	Damage() int
	HasHit(id entity.ID) bool
	MarkHit(id entity.ID)
}

// CombatManager resolves hits between the tracked player and the
// registered enemies once per step. All damage flows through the
// entities' TakeDamage hooks so their own policies (i-frames, flinch,
// death) stay with them.
type CombatManager struct {
	player  *entity.Player
	machine *Machine
	enemies []*entity.Enemy

	// Event callbacks, fired as hits land. Nil callbacks are skipped.
	OnHitLanded  func(target *entity.Enemy, damage int)
	OnPlayerHurt func(damage int)
}

// NewCombatManager creates a combat manager for the given player and its
// state machine.
func NewCombatManager(player *entity.Player, machine *Machine) *CombatManager {
	return &CombatManager{
		player:  player,
		machine: machine,
		enemies: make([]*entity.Enemy, 0, 16),
	}
}

// SetPlayer swaps the tracked player and machine, for respawns that
// rebuild the player.
func (m *CombatManager) SetPlayer(player *entity.Player, machine *Machine) {
	m.player = player
	m.machine = machine
}

// AddEnemy registers an enemy as a combat target.
func (m *CombatManager) AddEnemy(en *entity.Enemy) {
	m.enemies = append(m.enemies, en)
}

// RemoveEnemy unregisters an enemy. Unknown enemies are a no-op.
func (m *CombatManager) RemoveEnemy(en *entity.Enemy) {
	for i, e := range m.enemies {
		if e == en {
			m.enemies = append(m.enemies[:i], m.enemies[i+1:]...)
			return
		}
	}
}

// ClearEnemies unregisters every enemy, for level transitions.
func (m *CombatManager) ClearEnemies() {
	m.enemies = m.enemies[:0]
}

// Enemies returns the registered targets.
func (m *CombatManager) Enemies() []*entity.Enemy {
	return m.enemies
}

// Update runs the two hit passes for this step: the player's swing
// against enemies, then enemy swings against the player.
func (m *CombatManager) Update() {
	m.playerHits()
	m.enemyHits()
}

// playerHits applies the player's active swing to every overlapping enemy
// not yet in the swing's hit-target set. Targets are marked on overlap,
// not on damage, so a swing never re-tests a target that shrugged the
// hit off.
func (m *CombatManager) playerHits() {
	if m.player == nil || m.machine == nil {
		return
	}
	src, ok := m.machine.CurrentState().(AttackSource)
	if !ok {
		return
	}
	hitbox, active := src.ActiveHitbox()
	if !active {
		return
	}
	for _, en := range m.enemies {
		if !en.Alive || src.HasHit(en.ID) {
			continue
		}
		if !hitbox.Overlaps(en.Hitbox) {
			continue
		}
		src.MarkHit(en.ID)
		damage := src.Damage()
		en.TakeDamage(damage)
		if m.OnHitLanded != nil {
			m.OnHitLanded(en, damage)
		}
	}
}

// enemyHits applies enemy contact hitboxes to the player. The whole pass
// is skipped while the player is invulnerable, so dash and post-hit
// i-frames cost nothing.
func (m *CombatManager) enemyHits() {
	if m.player == nil || !m.player.Alive || m.player.Invulnerable {
		return
	}
	for _, en := range m.enemies {
		if !en.Alive {
			continue
		}
		hitbox, ok := en.ActiveAttackHitbox()
		if !ok || !hitbox.Overlaps(m.player.Hitbox) {
			continue
		}
		damage := en.AttackDamage()
		died := m.player.TakeDamage(damage)
		if m.OnPlayerHurt != nil {
			m.OnPlayerHurt(damage)
		}
		if died {
			return
		}
	}
}
