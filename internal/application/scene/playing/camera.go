package playing

// Camera tracks a world-space view origin that trails its target. Follow
// closes a fixed fraction of the remaining distance each step, so the
// view eases in without ever overshooting, and clamps to the stage so
// the void past the edges stays off screen.
type Camera struct {
	X, Y float64
	lerp float64
}

// NewCamera creates a camera with the given follow fraction in (0, 1].
// Out-of-range values snap the camera straight to its target.
func NewCamera(lerp float64) *Camera {
	if lerp <= 0 || lerp > 1 {
		lerp = 1
	}
	return &Camera{lerp: lerp}
}

// Follow eases the view toward centering the target point and clamps it
// to the stage bounds. A stage smaller than the screen pins to its
// origin.
func (c *Camera) Follow(targetX, targetY float64, stageW, stageH, screenW, screenH int) {
	dx, dy := c.desired(targetX, targetY, screenW, screenH)
	c.X += (dx - c.X) * c.lerp
	c.Y += (dy - c.Y) * c.lerp
	c.clamp(stageW, stageH, screenW, screenH)
}

// Snap centers the target immediately, for level transitions and
// respawns.
func (c *Camera) Snap(targetX, targetY float64, stageW, stageH, screenW, screenH int) {
	c.X, c.Y = c.desired(targetX, targetY, screenW, screenH)
	c.clamp(stageW, stageH, screenW, screenH)
}

func (c *Camera) desired(targetX, targetY float64, screenW, screenH int) (float64, float64) {
	return targetX - float64(screenW)/2, targetY - float64(screenH)/2
}

func (c *Camera) clamp(stageW, stageH, screenW, screenH int) {
	c.X = clampAxis(c.X, stageW, screenW)
	c.Y = clampAxis(c.Y, stageH, screenH)
}

func clampAxis(v float64, stage, screen int) float64 {
	max := float64(stage - screen)
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
