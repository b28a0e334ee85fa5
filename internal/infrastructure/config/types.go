package config

// PhysicsConfig is the root document for physics.json: every tuning knob of
// the simulation core plus the shell feedback settings.
type PhysicsConfig struct {
	Display  DisplayConfig   `json:"display"`
	Physics  PhysicsSettings `json:"physics"`
	Movement MovementConfig  `json:"movement"`
	Jump     JumpConfig      `json:"jump"`
	Dash     DashConfig      `json:"dash"`
	Wall     WallConfig      `json:"wall"`
	Stamina  StaminaConfig   `json:"stamina"`
	Combat   CombatConfig    `json:"combat"`
	Hazard   HazardConfig    `json:"hazard"`
	Feedback FeedbackConfig  `json:"feedback"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

type PhysicsSettings struct {
	Gravity      float64 `json:"gravity"`
	MaxFallSpeed float64 `json:"maxFallSpeed"`
	Friction     float64 `json:"friction"`
	RaycastStep  float64 `json:"raycastStep"`
}

type MovementConfig struct {
	RunSpeed   float64 `json:"runSpeed"`
	AirControl float64 `json:"airControl"`
}

type JumpConfig struct {
	// Impulse is negative: +Y points down.
	Impulse        float64 `json:"impulse"`
	VariableCutoff float64 `json:"variableCutoff"`
	WallKick       float64 `json:"wallKick"`
}

type DashConfig struct {
	Speed    float64 `json:"speed"`
	Duration float64 `json:"duration"`
}

type WallConfig struct {
	SlideSpeed  float64 `json:"slideSpeed"`
	ClimbFactor float64 `json:"climbFactor"`
}

type StaminaConfig struct {
	Max       float64 `json:"max"`
	DrainRate float64 `json:"drainRate"`
	RegenRate float64 `json:"regenRate"`
}

type CombatConfig struct {
	HurtInvuln float64 `json:"hurtInvuln"`
}

type HazardConfig struct {
	Bounce float64 `json:"bounce"`
}

type FeedbackConfig struct {
	Hitstop     HitstopConfig     `json:"hitstop"`
	ScreenShake ScreenShakeConfig `json:"screenShake"`
}

type HitstopConfig struct {
	Enabled bool `json:"enabled"`
	Frames  int  `json:"frames"`
}

type ScreenShakeConfig struct {
	Enabled   bool    `json:"enabled"`
	Intensity float64 `json:"intensity"`
	Decay     float64 `json:"decay"`
}
