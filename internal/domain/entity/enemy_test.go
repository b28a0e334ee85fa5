package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEnemy() *Enemy {
	return NewEnemy(2, "grunt", 300, 200, EnemyStats{
		Width:       48,
		Height:      48,
		BoxWidth:    32,
		BoxHeight:   44,
		MaxHealth:   30,
		Speed:       1.5,
		ChaseSpeed:  3.0,
		DetectRange: 220,
		AttackRange: 40,
		PatrolRange: 96,
		Damage:      10,
		HurtInvuln:  0.5,
	})
}

func TestNewEnemy(t *testing.T) {
	e := createTestEnemy()

	require.NotNil(t, e)
	assert.Equal(t, ID(2), e.ID)
	assert.Equal(t, "grunt", e.Kind)
	assert.Equal(t, BehaviorPatrol, e.Behavior)
	assert.Equal(t, 300.0, e.PatrolOriginX)
	assert.Equal(t, 1.0, e.PatrolDir)
	assert.Equal(t, 30, e.Health)
	assert.True(t, e.Alive)
}

func TestEnemy_TakeDamage(t *testing.T) {
	t.Run("survivable hit flinches and grants a window", func(t *testing.T) {
		e := createTestEnemy()

		died := e.TakeDamage(10)

		assert.False(t, died)
		assert.Equal(t, 20, e.Health)
		assert.Equal(t, BehaviorHurt, e.Behavior)
		assert.True(t, e.Invulnerable)
		assert.InDelta(t, hurtFlinchDuration, e.HurtTimer, 1e-9)
	})

	t.Run("flinch cancels a swing in progress", func(t *testing.T) {
		e := createTestEnemy()
		e.Behavior = BehaviorAttack
		e.WindupTimer = 0.2
		e.SetAttackHitbox(e.Hitbox)

		e.TakeDamage(10)

		assert.Equal(t, BehaviorHurt, e.Behavior)
		assert.Zero(t, e.WindupTimer)
		_, active := e.ActiveAttackHitbox()
		assert.False(t, active)
	})

	t.Run("lethal hit goes straight to dead", func(t *testing.T) {
		e := createTestEnemy()
		e.SetAttackHitbox(e.Hitbox)

		died := e.TakeDamage(50)

		assert.True(t, died)
		assert.Equal(t, BehaviorDead, e.Behavior)
		assert.False(t, e.Alive)
		_, active := e.ActiveAttackHitbox()
		assert.False(t, active)
	})

	t.Run("hits during the window are ignored", func(t *testing.T) {
		e := createTestEnemy()
		e.TakeDamage(10)

		died := e.TakeDamage(10)

		assert.False(t, died)
		assert.Equal(t, 20, e.Health)
	})
}

func TestEnemy_AttackHitbox(t *testing.T) {
	e := createTestEnemy()

	_, active := e.ActiveAttackHitbox()
	assert.False(t, active)

	box := e.Hitbox
	box.X += box.W
	e.SetAttackHitbox(box)

	got, active := e.ActiveAttackHitbox()
	assert.True(t, active)
	assert.Equal(t, box, got)
	assert.Equal(t, 10, e.AttackDamage())

	e.ClearAttackHitbox()
	_, active = e.ActiveAttackHitbox()
	assert.False(t, active)
}

func TestEnemy_Tick(t *testing.T) {
	e := createTestEnemy()
	e.TakeDamage(10)

	e.Tick(0.1)
	assert.Equal(t, BehaviorHurt, e.Behavior)

	e.Tick(0.15)
	assert.Zero(t, e.HurtTimer)

	e.Tick(0.3)
	assert.False(t, e.Invulnerable)
}

func TestBehavior_String(t *testing.T) {
	assert.Equal(t, "patrol", BehaviorPatrol.String())
	assert.Equal(t, "chase", BehaviorChase.String())
	assert.Equal(t, "attack", BehaviorAttack.String())
	assert.Equal(t, "hurt", BehaviorHurt.String())
	assert.Equal(t, "dead", BehaviorDead.String())
	assert.Equal(t, "unknown", Behavior(42).String())
}
