// Package playing provides the main gameplay scene: it samples input,
// steps the simulation world, and draws the primitive-shape view of it.
package playing

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/seojinpark/blade/internal/application/replay"
	"github.com/seojinpark/blade/internal/application/scene"
	"github.com/seojinpark/blade/internal/application/sim"
	"github.com/seojinpark/blade/internal/application/state"
	"github.com/seojinpark/blade/internal/application/system"
	"github.com/seojinpark/blade/internal/domain/entity"
	"github.com/seojinpark/blade/internal/domain/geom"
	"github.com/seojinpark/blade/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorWall       = color.RGBA{80, 80, 100, 255}
	colorHazard     = color.RGBA{200, 50, 50, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorFlash      = color.RGBA{255, 255, 255, 200}
	colorSwing      = color.RGBA{255, 240, 160, 140}
	colorEnemySwing = color.RGBA{255, 120, 80, 140}
	colorHitbox     = color.RGBA{100, 100, 200, 128}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
	colorStaminaFG  = color.RGBA{100, 150, 220, 255}
)

const cameraLerp = 0.18

// Playing is the main gameplay scene. It owns a simulation world, feeds
// it one button state per frame from either the keyboard or a replay,
// and renders the result. All gameplay rules live in the world; this
// scene handles pause, restart, recording, and presentation feedback.
type Playing struct {
	world    *sim.World
	phase    state.GameState
	keyboard *system.Keyboard
	camera   *Camera

	screenW    int
	screenH    int
	dt         float64
	startLevel string
	levelName  string

	// Feedback
	hitstopFrames int
	shake         float64
	shakeDecay    float64

	// Input recording and playback
	recorder       *Recorder
	recordFilename string
	replayer       *replay.Replayer
}

// New creates the gameplay scene and loads the starting level. If
// recordPath is not empty the session's inputs are recorded and saved
// there on exit.
func New(cfg *config.GameConfig, loader *config.Loader, level, recordPath string) (*Playing, error) {
	p, err := newPlaying(cfg, loader, level)
	if err != nil {
		return nil, err
	}

	if recordPath != "" {
		p.recorder = NewRecorder(level)
		p.recordFilename = recordPath
		log.Printf("Recording enabled: %s", recordPath)
	}

	return p, nil
}

// NewReplay creates the gameplay scene driven by a recorded session
// instead of the keyboard. When the recording runs out, control falls
// back to the keyboard.
func NewReplay(cfg *config.GameConfig, loader *config.Loader, data replay.Data) (*Playing, error) {
	if data.Level == "" {
		return nil, fmt.Errorf("replay names no level")
	}

	p, err := newPlaying(cfg, loader, data.Level)
	if err != nil {
		return nil, err
	}

	p.replayer = replay.NewReplayer(data)
	log.Printf("Replaying %d frames on level %q", len(data.Frames), data.Level)
	return p, nil
}

func newPlaying(cfg *config.GameConfig, loader *config.Loader, level string) (*Playing, error) {
	world := sim.New(cfg, loader)
	if err := world.LoadLevel(level); err != nil {
		return nil, fmt.Errorf("failed to load level %q: %w", level, err)
	}

	p := &Playing{
		world:      world,
		phase:      state.StatePlaying,
		keyboard:   system.NewKeyboard(),
		camera:     NewCamera(cameraLerp),
		screenW:    cfg.Physics.Display.ScreenWidth,
		screenH:    cfg.Physics.Display.ScreenHeight,
		dt:         1.0 / float64(cfg.Physics.Display.Framerate),
		startLevel: level,
		levelName:  world.Stage().Name,
		shakeDecay: cfg.Physics.Feedback.ScreenShake.Decay,
	}

	fb := cfg.Physics.Feedback
	world.Combat().OnHitLanded = func(_ *entity.Enemy, _ int) {
		if fb.Hitstop.Enabled {
			p.hitstopFrames = fb.Hitstop.Frames
		}
		if fb.ScreenShake.Enabled {
			p.shake = fb.ScreenShake.Intensity * 0.5
		}
	}
	world.Combat().OnPlayerHurt = func(_ int) {
		if fb.ScreenShake.Enabled {
			p.shake = fb.ScreenShake.Intensity
		}
	}
	world.OnLevelCleared = func(name string) {
		log.Printf("Level cleared: %s", name)
	}

	p.snapCamera()
	return p, nil
}

// Update advances the scene by one frame (implements scene.Scene).
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	// Hitstop freezes the whole frame, input included.
	if p.hitstopFrames > 0 {
		p.hitstopFrames--
		return nil, nil
	}

	switch p.phase {
	case state.StatePlaying:
		if err := p.updatePlaying(); err != nil {
			return nil, err
		}
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.phase = state.StatePlaying
		}
	case state.StateGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := p.world.Restart(); err != nil {
				return nil, err
			}
			p.phase = state.StatePlaying
			p.snapCamera()
		}
	case state.StateComplete:
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := p.newRun(); err != nil {
				return nil, err
			}
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.phase = state.StatePaused
		return nil
	}

	// F5: save the recording without waiting for exit.
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	buttons := p.readButtons()
	if p.recorder != nil {
		p.recorder.RecordFrame(buttons)
	}

	if err := p.world.Step(buttons, p.dt); err != nil {
		return fmt.Errorf("simulation step: %w", err)
	}

	p.shake *= p.shakeDecay

	// A cleared level swaps the stage mid-step; cut the camera instead
	// of panning across the whole map.
	if name := p.world.Stage().Name; name != p.levelName {
		p.levelName = name
		p.snapCamera()
	} else {
		p.followCamera()
	}

	if p.world.GameOver() {
		p.phase = state.StateGameOver
		if p.recorder != nil {
			p.saveRecording()
		}
	} else if p.world.Complete() {
		p.phase = state.StateComplete
		if p.recorder != nil {
			p.saveRecording()
		}
	}
	return nil
}

// readButtons returns this frame's input, from the replay while one is
// running and from the keyboard otherwise.
func (p *Playing) readButtons() system.Buttons {
	if p.replayer != nil {
		if buttons, ok := p.replayer.Next(); ok {
			return buttons
		}
		log.Printf("Replay finished after %d frames", p.replayer.TotalFrames())
		p.replayer = nil
	}
	return p.keyboard.Read()
}

// newRun rewinds the level chain for another run. LoadLevel keeps the
// completion flag and the player's remaining health; Restart clears
// both once the first stage is back in.
func (p *Playing) newRun() error {
	if err := p.world.LoadLevel(p.startLevel); err != nil {
		return err
	}
	if err := p.world.Restart(); err != nil {
		return err
	}
	p.phase = state.StatePlaying
	p.levelName = p.world.Stage().Name
	p.snapCamera()
	return nil
}

func (p *Playing) followCamera() {
	box := p.world.Player().Hitbox
	stage := p.world.Stage()
	p.camera.Follow(box.CenterX(), box.CenterY(), stage.PixelWidth(), stage.PixelHeight(), p.screenW, p.screenH)
}

func (p *Playing) snapCamera() {
	box := p.world.Player().Hitbox
	stage := p.world.Stage()
	p.camera.Snap(box.CenterX(), box.CenterY(), stage.PixelWidth(), stage.PixelHeight(), p.screenW, p.screenH)
}

// saveRecording writes the captured inputs to the configured file, or a
// timestamped one when none was given.
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen.
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX := int(p.camera.X)
	camY := int(p.camera.Y)

	// Screen shake jitters the camera, not the world.
	camX += int(p.shake * (2*randFloat() - 1))
	camY += int(p.shake * (2*randFloat() - 1))

	p.drawTiles(screen, camX, camY)
	p.drawEnemies(screen, camX, camY)
	p.drawPlayer(screen, camX, camY)

	p.drawUI(screen)

	switch p.phase {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateGameOver:
		p.drawGameOverOverlay(screen)
	case state.StateComplete:
		p.drawCompleteOverlay(screen)
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX, camY int) {
	stage := p.world.Stage()
	ts := stage.TileSize

	startTileX := camX / ts
	startTileY := camY / ts
	endTileX := (camX+p.screenW)/ts + 1
	endTileY := (camY+p.screenH)/ts + 1

	for ty := startTileY; ty <= endTileY && ty < stage.Height; ty++ {
		for tx := startTileX; tx <= endTileX && tx < stage.Width; tx++ {
			if tx < 0 || ty < 0 {
				continue
			}

			var c color.Color
			switch stage.TileAt(tx, ty).Kind {
			case entity.TileSolid:
				c = colorWall
			case entity.TileHazard:
				c = colorHazard
			default:
				continue
			}

			x := float64(tx*ts - camX)
			y := float64(ty*ts - camY)
			ebitenutil.DrawRect(screen, x, y, float64(ts), float64(ts), c)
		}
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, camX, camY int) {
	player := p.world.Player()

	// Flash during the post-hit window.
	c := colorPlayer
	if player.Invulnerable && int(player.InvulnTimer*10)%2 == 0 {
		c = colorFlash
	}

	drawRectAt(screen, player.Rect, camX, camY, c)

	// The active swing is the attack's only visual.
	if atk, ok := p.world.Machine().CurrentState().(*system.AttackState); ok {
		if box, active := atk.ActiveHitbox(); active {
			drawRectAt(screen, box, camX, camY, colorSwing)
		}
	}

	if ebiten.IsKeyPressed(ebiten.KeyTab) {
		drawRectAt(screen, player.Hitbox, camX, camY, colorHitbox)
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image, camX, camY int) {
	for _, en := range p.world.Enemies() {
		c := colorEnemy
		if en.HurtTimer > 0 {
			c = colorFlash
		}

		drawRectAt(screen, en.Rect, camX, camY, c)

		if box, active := en.ActiveAttackHitbox(); active {
			drawRectAt(screen, box, camX, camY, colorEnemySwing)
		}

		if ebiten.IsKeyPressed(ebiten.KeyTab) {
			drawRectAt(screen, en.Hitbox, camX, camY, colorHitbox)
		}
	}
}

func drawRectAt(screen *ebiten.Image, r geom.Rect, camX, camY int, c color.Color) {
	ebitenutil.DrawRect(screen, r.X-float64(camX), r.Y-float64(camY), r.W, r.H, c)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	player := p.world.Player()

	// Health bar
	barX := 10.0
	barY := float64(p.screenH - 20)
	barW := 100.0
	barH := 10.0

	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)
	healthRatio := float64(player.Health) / float64(player.MaxHealth)
	if healthRatio < 0 {
		healthRatio = 0
	}
	ebitenutil.DrawRect(screen, barX, barY, barW*healthRatio, barH, colorHealthFG)

	// Stamina bar above it
	staminaY := float64(p.screenH - 34)
	ebitenutil.DrawRect(screen, barX, staminaY, barW, 6, colorHealthBG)
	if player.MaxStamina > 0 {
		ebitenutil.DrawRect(screen, barX, staminaY, barW*player.Stamina/player.MaxStamina, 6, colorStaminaFG)
	}

	status := fmt.Sprintf("%s | Kills: %d | %s", p.world.Stage().Name, p.world.Kills(), p.world.Machine().Current())
	ebitenutil.DebugPrintAt(screen, status, 10, p.screenH-52)

	controls := "A/D: Move | Space: Jump | Z: Attack | Shift: Dash | Tab: Hitboxes | ESC: Pause"
	ebitenutil.DebugPrint(screen, controls)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{100, 0, 0, 180}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := fmt.Sprintf("YOU DIED\n\nKills: %d\n\nPress Z to retry", p.world.Kills())
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

func (p *Playing) drawCompleteOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 60, 30, 180}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := fmt.Sprintf("RUN COMPLETE\n\nKills: %d\n\nPress Z to play again", p.world.Kills())
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

// OnEnter is called when entering this scene.
func (p *Playing) OnEnter() {
	// Scene is already initialized in New.
}

// OnExit is called when leaving this scene.
func (p *Playing) OnExit() {
	p.saveRecording()
}

var randState uint32 = 1

func randFloat() float64 {
	randState = randState*1103515245 + 12345
	return float64(randState&0x7fffffff) / float64(0x7fffffff)
}
