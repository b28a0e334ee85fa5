// Package sim owns the headless simulation: the world state and the
// deterministic fixed-step update. Nothing in this package draws, polls a
// keyboard, or depends on the frame rate; the shells feed it button states
// and a dt.
package sim

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/seojinpark/blade/internal/application/system"
	"github.com/seojinpark/blade/internal/domain/entity"
	"github.com/seojinpark/blade/internal/domain/geom"
	"github.com/seojinpark/blade/internal/infrastructure/config"
)

const playerID entity.ID = 1

// World holds everything one simulation runs on: the player and its state
// machine, the live enemies, the current stage, and the per-step systems.
type World struct {
	cfg    *config.GameConfig
	loader *config.Loader

	stage    *entity.Stage
	player   *entity.Player
	machine  *system.Machine
	resolver *system.Resolver
	physics  *system.Physics
	combat   *system.CombatManager
	ai       *system.AI

	prev   system.Buttons
	nextID entity.ID

	frame    int
	kills    int
	gameOver bool
	complete bool

	// OnLevelCleared fires when the last enemy of a level despawns, before
	// the next level in the chain loads. Nil is skipped.
	OnLevelCleared func(name string)
}

// New creates a world from the loaded tuning documents. No level is
// active until LoadLevel runs.
func New(cfg *config.GameConfig, loader *config.Loader) *World {
	resolver := system.NewResolver(cfg.Physics.Physics.RaycastStep)
	machine := system.NewMachine(system.DefaultStates(cfg.Physics)...)

	pc := cfg.Entities.Player
	player := entity.NewPlayer(playerID, 0, 0, entity.PlayerStats{
		Width:        pc.Size.Width,
		Height:       pc.Size.Height,
		BoxWidth:     pc.Box.Width,
		BoxHeight:    pc.Box.Height,
		MaxHealth:    pc.MaxHealth,
		MaxStamina:   cfg.Physics.Stamina.Max,
		StaminaRegen: cfg.Physics.Stamina.RegenRate,
		HurtInvuln:   cfg.Physics.Combat.HurtInvuln,
	})
	player.Body = entity.NewBody(cfg.Physics.Physics.Gravity, cfg.Physics.Physics.MaxFallSpeed)

	return &World{
		cfg:      cfg,
		loader:   loader,
		player:   player,
		machine:  machine,
		resolver: resolver,
		physics:  system.NewPhysics(cfg.Physics.Physics.Friction, resolver),
		combat:   system.NewCombatManager(player, machine),
		ai:       system.NewAI(resolver),
		nextID:   playerID + 1,
	}
}

// LoadLevel loads the named level document, builds its stage, and enters
// it: the collider set swaps wholesale, enemies respawn from the level's
// placements, and the player moves to the spawn point in the idle state.
func (w *World) LoadLevel(name string) error {
	lv, err := w.loader.LoadLevel(name)
	if err != nil {
		return err
	}
	stage, err := system.BuildStage(lv)
	if err != nil {
		return err
	}
	return w.enterStage(stage)
}

// Restart replays the current level from scratch: full health and stamina,
// enemies respawned, game-over flag cleared.
func (w *World) Restart() error {
	if w.stage == nil {
		return fmt.Errorf("no level loaded")
	}
	w.player.Health = w.player.MaxHealth
	w.player.Alive = true
	w.player.Stamina = w.player.MaxStamina
	w.player.Invulnerable = false
	w.player.InvulnTimer = 0
	w.gameOver = false
	w.complete = false
	return w.enterStage(w.stage)
}

func (w *World) enterStage(stage *entity.Stage) error {
	enemies := make([]*entity.Enemy, 0, len(stage.Enemies))
	for _, spawn := range stage.Enemies {
		en, err := w.spawnEnemy(stage.Name, spawn)
		if err != nil {
			return err
		}
		enemies = append(enemies, en)
	}

	w.stage = stage
	w.resolver.SetTiles(stage.Colliders())
	w.combat.ClearEnemies()
	for _, en := range enemies {
		w.combat.AddEnemy(en)
	}

	w.player.SetPos(stage.SpawnX, stage.SpawnY)
	w.player.Velocity = geom.Vec2{}
	w.player.ResetContactFlags()
	w.prev = system.Buttons{}

	return w.machine.Force(w.player, system.StateIdle)
}

func (w *World) spawnEnemy(level string, spawn entity.EnemySpawn) (*entity.Enemy, error) {
	ec, ok := w.cfg.Entities.Enemies[spawn.Kind]
	if !ok {
		return nil, fmt.Errorf("level %q: unknown enemy kind %q", level, spawn.Kind)
	}
	en := entity.NewEnemy(w.nextID, spawn.Kind, spawn.X, spawn.Y, entity.EnemyStats{
		Width:       ec.Size.Width,
		Height:      ec.Size.Height,
		BoxWidth:    ec.Box.Width,
		BoxHeight:   ec.Box.Height,
		MaxHealth:   ec.MaxHealth,
		Speed:       ec.Speed,
		ChaseSpeed:  ec.ChaseSpeed,
		DetectRange: ec.DetectRange,
		AttackRange: ec.AttackRange,
		PatrolRange: ec.PatrolRange,
		Damage:      ec.Damage,
		HurtInvuln:  ec.HurtInvuln,
	})
	en.Body = entity.NewBody(w.cfg.Physics.Physics.Gravity, w.cfg.Physics.Physics.MaxFallSpeed)
	w.nextID++
	return en, nil
}

// Step advances the world by one fixed step: input snapshot, player state
// machine, player physics, enemy AI and physics, combat, then timers and
// hazards. The snapshot is taken once and every system in the step sees
// the same values.
//
// The returned error means a broken state table, not a gameplay outcome;
// death and level completion are flags, not errors.
func (w *World) Step(buttons system.Buttons, dt float64) error {
	if w.stage == nil {
		return fmt.Errorf("no level loaded")
	}
	if w.gameOver || w.complete {
		return nil
	}

	in := system.MakeSnapshot(buttons, w.prev)
	w.prev = buttons
	w.frame++

	if err := w.machine.Update(w.player, in, dt); err != nil {
		return fmt.Errorf("failed to update player state: %w", err)
	}

	w.physics.Step(&w.player.Entity, in.HorizontalAxis(), dt)

	for _, en := range w.combat.Enemies() {
		axis := w.ai.Update(en, w.player, dt)
		w.physics.Step(&en.Entity, axis, dt)
	}

	w.combat.Update()

	w.player.Tick(dt)
	for _, en := range w.combat.Enemies() {
		en.Tick(dt)
	}
	w.applyHazards()

	w.despawnDead()

	if !w.player.Alive {
		w.gameOver = true
		return nil
	}
	if len(w.combat.Enemies()) == 0 {
		return w.advanceLevel()
	}
	return nil
}

// applyHazards damages entities overlapping a hazard tile and bounces
// them upward. Damage flows through the usual TakeDamage hooks, so
// invulnerability windows apply the same as combat hits.
func (w *World) applyHazards() {
	bounce := w.cfg.Physics.Hazard.Bounce
	if w.player.Alive && !w.player.Invulnerable {
		if tile, ok := w.stage.HazardAt(w.player.Hitbox); ok {
			w.player.TakeDamage(tile.Damage)
			w.player.Velocity.Y = bounce
		}
	}
	for _, en := range w.combat.Enemies() {
		if !en.Alive || en.Invulnerable {
			continue
		}
		if tile, ok := w.stage.HazardAt(en.Hitbox); ok {
			en.TakeDamage(tile.Damage)
			en.Velocity.Y = bounce
		}
	}
}

func (w *World) despawnDead() {
	var dead []*entity.Enemy
	for _, en := range w.combat.Enemies() {
		if !en.Alive {
			dead = append(dead, en)
		}
	}
	for _, en := range dead {
		w.combat.RemoveEnemy(en)
		w.kills++
	}
}

// advanceLevel moves to the next level in the chain, or marks the run
// complete at the end of it. A chain naming a level whose document does
// not exist ends the run with a warning; a document that exists but
// fails to load is a broken table and stays an error.
func (w *World) advanceLevel() error {
	if w.OnLevelCleared != nil {
		w.OnLevelCleared(w.stage.Name)
	}
	if w.stage.Next == "" {
		w.complete = true
		return nil
	}
	if err := w.LoadLevel(w.stage.Next); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Level %q is missing, ending the run: %v", w.stage.Next, err)
			w.complete = true
			return nil
		}
		return fmt.Errorf("failed to advance to level %q: %w", w.stage.Next, err)
	}
	return nil
}

// Player returns the simulated player.
func (w *World) Player() *entity.Player { return w.player }

// Enemies returns the live enemies.
func (w *World) Enemies() []*entity.Enemy { return w.combat.Enemies() }

// Stage returns the current stage, nil before the first LoadLevel.
func (w *World) Stage() *entity.Stage { return w.stage }

// Machine returns the player's state machine.
func (w *World) Machine() *system.Machine { return w.machine }

// Combat returns the combat manager, whose hit callbacks the shell hooks.
func (w *World) Combat() *system.CombatManager { return w.combat }

// Frame returns the number of steps taken.
func (w *World) Frame() int { return w.frame }

// Kills returns the number of enemies despawned so far.
func (w *World) Kills() int { return w.kills }

// GameOver reports whether the player has died. Step is a no-op until
// Restart.
func (w *World) GameOver() bool { return w.gameOver }

// Complete reports whether the last level of the chain has been cleared.
func (w *World) Complete() bool { return w.complete }
