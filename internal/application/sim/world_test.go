package sim

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojinpark/blade/internal/application/system"
	"github.com/seojinpark/blade/internal/domain/geom"
	"github.com/seojinpark/blade/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

func createTestGameConfig() *config.GameConfig {
	return &config.GameConfig{
		Physics: &config.PhysicsConfig{
			Physics: config.PhysicsSettings{
				Gravity:      0.8,
				MaxFallSpeed: 15.0,
				Friction:     0.15,
				RaycastStep:  4.0,
			},
			Movement: config.MovementConfig{
				RunSpeed:   5.0,
				AirControl: 0.65,
			},
			Jump: config.JumpConfig{
				Impulse:        -16.0,
				VariableCutoff: 0.5,
				WallKick:       8.0,
			},
			Dash: config.DashConfig{
				Speed:    15.0,
				Duration: 0.2,
			},
			Wall: config.WallConfig{
				SlideSpeed:  2.0,
				ClimbFactor: 1.5,
			},
			Stamina: config.StaminaConfig{
				Max:       100.0,
				DrainRate: 40.0,
				RegenRate: 60.0,
			},
			Combat: config.CombatConfig{
				HurtInvuln: 1.0,
			},
			Hazard: config.HazardConfig{
				Bounce: -8.0,
			},
		},
		Entities: &config.EntitiesConfig{
			Player: config.PlayerConfig{
				Size:      config.SizeConfig{Width: 48, Height: 64},
				Box:       config.SizeConfig{Width: 32, Height: 60},
				MaxHealth: 100,
			},
			Enemies: map[string]config.EnemyConfig{
				"grunt": {
					Size:        config.SizeConfig{Width: 48, Height: 48},
					Box:         config.SizeConfig{Width: 32, Height: 44},
					MaxHealth:   10,
					Speed:       1.5,
					ChaseSpeed:  3.0,
					DetectRange: 220,
					AttackRange: 40,
					PatrolRange: 96,
					Damage:      10,
					HurtInvuln:  0.3,
				},
			},
		},
	}
}

// createTestLevels builds a small level chain on an in-memory filesystem:
// arena (a wide room with one distant grunt), duel (a grunt in arm's
// reach, chained to cleared), cleared (empty, end of chain) and spikes
// (a hazard strip under the spawn point).
func createTestLevels() fstest.MapFS {
	arena := `name: arena
tileSize: 32
legend:
  "#": {solid: true}
tiles:
  - "########################"
  - "#                      #"
  - "#                      #"
  - "#                      #"
  - "#                      #"
  - "#                      #"
  - "#                      #"
  - "#                      #"
  - "########################"
spawn: {x: 48, y: 192}
enemies:
  - {kind: grunt, x: 600, y: 208}
next: ""
`
	duel := `name: duel
tileSize: 32
legend:
  "#": {solid: true}
tiles:
  - "############"
  - "#          #"
  - "#          #"
  - "#          #"
  - "#          #"
  - "#          #"
  - "############"
spawn: {x: 48, y: 128}
enemies:
  - {kind: grunt, x: 100, y: 144}
next: cleared
`
	cleared := `name: cleared
tileSize: 32
legend:
  "#": {solid: true}
tiles:
  - "############"
  - "#          #"
  - "#          #"
  - "#          #"
  - "#          #"
  - "#          #"
  - "############"
spawn: {x: 48, y: 128}
next: ""
`
	spikes := `name: spikes
tileSize: 32
legend:
  "#": {solid: true}
  "^": {hazard: true, damage: 10}
tiles:
  - "############"
  - "#          #"
  - "#          #"
  - "#          #"
  - "#          #"
  - "#  ^^^     #"
  - "############"
spawn: {x: 112, y: 128}
enemies:
  - {kind: grunt, x: 272, y: 144}
next: ""
`
	badkind := `name: badkind
tileSize: 32
legend:
  "#": {solid: true}
tiles:
  - "####"
  - "#  #"
  - "####"
spawn: {x: 32, y: 0}
enemies:
  - {kind: ogre, x: 64, y: 16}
next: ""
`
	brokenchain := `name: brokenchain
tileSize: 32
legend:
  "#": {solid: true}
tiles:
  - "############"
  - "#          #"
  - "#          #"
  - "#          #"
  - "#          #"
  - "#          #"
  - "############"
spawn: {x: 48, y: 128}
enemies:
  - {kind: grunt, x: 100, y: 144}
next: ghost
`
	return fstest.MapFS{
		"levels/arena.yaml":       {Data: []byte(arena)},
		"levels/duel.yaml":        {Data: []byte(duel)},
		"levels/cleared.yaml":     {Data: []byte(cleared)},
		"levels/spikes.yaml":      {Data: []byte(spikes)},
		"levels/badkind.yaml":     {Data: []byte(badkind)},
		"levels/brokenchain.yaml": {Data: []byte(brokenchain)},
	}
}

func createTestWorld(t *testing.T) *World {
	t.Helper()
	return New(createTestGameConfig(), config.NewFSLoader(createTestLevels()))
}

// settle steps the world with no input until the player has come to rest
// in the idle state.
func settle(t *testing.T, w *World) {
	t.Helper()
	for i := 0; i < 10; i++ {
		require.NoError(t, w.Step(system.Buttons{}, testDT))
		if w.Machine().Current() == system.StateIdle && w.Player().OnGround {
			return
		}
	}
	t.Fatalf("player never settled, state %s", w.Machine().Current())
}

func TestNewWorld(t *testing.T) {
	w := createTestWorld(t)

	require.NotNil(t, w)
	assert.Nil(t, w.Stage())
	assert.NotNil(t, w.Player())
	assert.Equal(t, 100, w.Player().Health)
	assert.Empty(t, w.Enemies())
	assert.Zero(t, w.Frame())
}

func TestWorld_RequiresLoadedLevel(t *testing.T) {
	w := createTestWorld(t)

	assert.ErrorContains(t, w.Step(system.Buttons{}, testDT), "no level loaded")
	assert.ErrorContains(t, w.Restart(), "no level loaded")
}

func TestWorld_LoadLevel(t *testing.T) {
	w := createTestWorld(t)

	require.NoError(t, w.LoadLevel("arena"))

	stage := w.Stage()
	require.NotNil(t, stage)
	assert.Equal(t, "arena", stage.Name)
	assert.Equal(t, 32, stage.TileSize)
	assert.Equal(t, 24, stage.Width)
	assert.Equal(t, 9, stage.Height)

	p := w.Player()
	assert.Equal(t, geom.Vec2{X: 48, Y: 192}, p.Pos)
	assert.Equal(t, geom.Vec2{}, p.Velocity)
	assert.Equal(t, system.StateIdle, w.Machine().Current())

	enemies := w.Enemies()
	require.Len(t, enemies, 1)
	assert.Equal(t, "grunt", enemies[0].Kind)
	assert.Equal(t, geom.Vec2{X: 600, Y: 208}, enemies[0].Pos)
	assert.Equal(t, 10, enemies[0].Health)
}

func TestWorld_LoadLevel_Errors(t *testing.T) {
	t.Run("missing level", func(t *testing.T) {
		w := createTestWorld(t)
		assert.ErrorContains(t, w.LoadLevel("nowhere"), "failed to read level nowhere")
	})

	t.Run("unknown enemy kind leaves the world unchanged", func(t *testing.T) {
		w := createTestWorld(t)

		err := w.LoadLevel("badkind")

		assert.ErrorContains(t, err, `unknown enemy kind "ogre"`)
		assert.Nil(t, w.Stage())
		assert.ErrorContains(t, w.Step(system.Buttons{}, testDT), "no level loaded")
	})
}

// The spawn point sits flush on the floor, so an idle player must hold
// position and ground contact on every step.
func TestWorld_Step_StandingIsStable(t *testing.T) {
	w := createTestWorld(t)
	require.NoError(t, w.LoadLevel("arena"))
	settle(t, w)

	for i := 0; i < 30; i++ {
		require.NoError(t, w.Step(system.Buttons{}, testDT))

		p := w.Player()
		assert.Equal(t, 256.0, p.Hitbox.Bottom(), "step %d", i)
		assert.True(t, p.OnGround, "step %d", i)
		assert.Equal(t, system.StateIdle, w.Machine().Current(), "step %d", i)
	}
}

func TestWorld_Step_Run(t *testing.T) {
	w := createTestWorld(t)
	require.NoError(t, w.LoadLevel("arena"))
	settle(t, w)
	startX := w.Player().Pos.X

	// The first held step only transitions idle -> run; the run state
	// drives on the 29 that follow.
	for i := 0; i < 30; i++ {
		require.NoError(t, w.Step(system.Buttons{Right: true}, testDT))
	}

	p := w.Player()
	assert.Equal(t, system.StateRun, w.Machine().Current())
	assert.True(t, p.FacingRight)
	assert.InDelta(t, startX+29*5, p.Pos.X, 1e-9)
	assert.Equal(t, 256.0, p.Hitbox.Bottom())
}

func TestWorld_Step_JumpFromStanding(t *testing.T) {
	w := createTestWorld(t)
	require.NoError(t, w.LoadLevel("arena"))
	settle(t, w)

	require.NoError(t, w.Step(system.Buttons{Jump: true}, testDT))

	p := w.Player()
	assert.Equal(t, system.StateJump, w.Machine().Current())
	assert.Negative(t, p.Velocity.Y)
	assert.Less(t, p.Hitbox.Bottom(), 256.0)

	// Hold jump through the whole arc and wait for the landing.
	lowest := p.Hitbox.Bottom()
	landed := false
	for i := 0; i < 120; i++ {
		require.NoError(t, w.Step(system.Buttons{Jump: true}, testDT))
		if b := w.Player().Hitbox.Bottom(); b < lowest {
			lowest = b
		}
		if w.Player().OnGround && w.Machine().Current() == system.StateIdle {
			landed = true
			break
		}
	}

	require.True(t, landed, "never landed")
	assert.Less(t, lowest, 200.0, "jump never gained height")
	assert.Equal(t, 256.0, w.Player().Hitbox.Bottom())
}

func TestWorld_Step_KillAdvancesLevelChain(t *testing.T) {
	w := createTestWorld(t)
	var cleared []string
	w.OnLevelCleared = func(name string) { cleared = append(cleared, name) }

	require.NoError(t, w.LoadLevel("duel"))
	settle(t, w)

	// The grunt spawns within arm's reach; one swing of attack 1 kills
	// it the same step the hitbox appears.
	require.NoError(t, w.Step(system.Buttons{Attack: true}, testDT))

	assert.Equal(t, 1, w.Kills())
	assert.Equal(t, []string{"duel"}, cleared)
	require.NotNil(t, w.Stage())
	assert.Equal(t, "cleared", w.Stage().Name)
	assert.Empty(t, w.Enemies())
	assert.False(t, w.Complete())
	assert.Equal(t, system.StateIdle, w.Machine().Current())
	assert.Equal(t, geom.Vec2{X: 48, Y: 128}, w.Player().Pos)

	// The next step finds the chained level empty and ends the run.
	require.NoError(t, w.Step(system.Buttons{}, testDT))

	assert.True(t, w.Complete())
	assert.False(t, w.GameOver())
	assert.Equal(t, []string{"duel", "cleared"}, cleared)

	// A complete world freezes.
	frame := w.Frame()
	require.NoError(t, w.Step(system.Buttons{Right: true}, testDT))
	assert.Equal(t, frame, w.Frame())
}

// A chain naming a level with no document ends the run instead of
// erroring out mid-game.
func TestWorld_Step_MissingChainedLevelEndsRun(t *testing.T) {
	w := createTestWorld(t)
	require.NoError(t, w.LoadLevel("brokenchain"))
	settle(t, w)

	require.NoError(t, w.Step(system.Buttons{Attack: true}, testDT))

	assert.True(t, w.Complete())
	assert.Equal(t, "brokenchain", w.Stage().Name)
	assert.Equal(t, 1, w.Kills())
}

func TestWorld_Step_HazardDamageAndBounce(t *testing.T) {
	w := createTestWorld(t)
	require.NoError(t, w.LoadLevel("spikes"))

	// The spawn point hangs over the spike strip, so the first step
	// lands the hit.
	require.NoError(t, w.Step(system.Buttons{}, testDT))

	p := w.Player()
	assert.Equal(t, 90, p.Health)
	assert.True(t, p.Invulnerable)
	assert.Equal(t, -8.0, p.Velocity.Y)
	assert.False(t, w.GameOver())

	// The bounce carries the player up and the i-frames block a second
	// hit for the rest of the window.
	for i := 0; i < 30; i++ {
		require.NoError(t, w.Step(system.Buttons{}, testDT))
	}
	assert.Equal(t, 90, p.Health)
	assert.False(t, w.GameOver())
}

func TestWorld_Step_GameOverAndRestart(t *testing.T) {
	w := createTestWorld(t)
	require.NoError(t, w.LoadLevel("spikes"))
	w.Player().Health = 10

	require.NoError(t, w.Step(system.Buttons{}, testDT))

	assert.True(t, w.GameOver())
	assert.False(t, w.Complete())
	assert.False(t, w.Player().Alive)
	assert.Equal(t, 0, w.Player().Health)

	// A dead world freezes until Restart.
	frame := w.Frame()
	require.NoError(t, w.Step(system.Buttons{Right: true}, testDT))
	assert.Equal(t, frame, w.Frame())

	require.NoError(t, w.Restart())

	assert.False(t, w.GameOver())
	assert.Equal(t, "spikes", w.Stage().Name)
	p := w.Player()
	assert.True(t, p.Alive)
	assert.Equal(t, 100, p.Health)
	assert.False(t, p.Invulnerable)
	assert.Equal(t, geom.Vec2{X: 112, Y: 128}, p.Pos)
	require.Len(t, w.Enemies(), 1)
	assert.Equal(t, 10, w.Enemies()[0].Health)
	assert.Equal(t, system.StateIdle, w.Machine().Current())
}

// Two worlds fed the same script must agree on every observable, every
// step. The script covers running, a jump with a variable-height release,
// an attack and a direction change.
func TestWorld_Determinism(t *testing.T) {
	script := func(frame int) system.Buttons {
		switch {
		case frame < 10:
			return system.Buttons{}
		case frame < 40:
			return system.Buttons{Right: true}
		case frame == 40:
			return system.Buttons{Right: true, Jump: true}
		case frame < 80:
			return system.Buttons{Right: true}
		case frame == 80:
			return system.Buttons{Right: true, Attack: true}
		case frame < 170:
			return system.Buttons{Left: true}
		default:
			return system.Buttons{}
		}
	}

	a := createTestWorld(t)
	b := createTestWorld(t)
	require.NoError(t, a.LoadLevel("arena"))
	require.NoError(t, b.LoadLevel("arena"))

	for frame := 0; frame < 180; frame++ {
		require.NoError(t, a.Step(script(frame), testDT))
		require.NoError(t, b.Step(script(frame), testDT))

		require.Equal(t, a.Player().Pos, b.Player().Pos, "frame %d", frame)
		require.Equal(t, a.Player().Velocity, b.Player().Velocity, "frame %d", frame)
		require.Equal(t, a.Machine().Current(), b.Machine().Current(), "frame %d", frame)
		require.Equal(t, a.Player().Health, b.Player().Health, "frame %d", frame)

		ea, eb := a.Enemies(), b.Enemies()
		require.Equal(t, len(ea), len(eb), "frame %d", frame)
		for i := range ea {
			require.Equal(t, ea[i].Pos, eb[i].Pos, "frame %d enemy %d", frame, i)
			require.Equal(t, ea[i].Behavior, eb[i].Behavior, "frame %d enemy %d", frame, i)
		}
	}

	assert.Equal(t, 180, a.Frame())
	assert.Equal(t, a.Frame(), b.Frame())
}
