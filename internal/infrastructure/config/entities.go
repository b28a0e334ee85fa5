package config

// EntitiesConfig is the root document for entities.json.
type EntitiesConfig struct {
	Player  PlayerConfig           `json:"player"`
	Enemies map[string]EnemyConfig `json:"enemies"`
}

type PlayerConfig struct {
	Size      SizeConfig `json:"size"`
	Box       SizeConfig `json:"box"`
	MaxHealth int        `json:"maxHealth"`
}

// SizeConfig is a width/height pair in pixels. Size is the visual rect,
// Box the (smaller) collision box pinned to its bottom-center.
type SizeConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type EnemyConfig struct {
	Size        SizeConfig `json:"size"`
	Box         SizeConfig `json:"box"`
	MaxHealth   int        `json:"maxHealth"`
	Speed       float64    `json:"speed"`
	ChaseSpeed  float64    `json:"chaseSpeed"`
	DetectRange float64    `json:"detectRange"`
	AttackRange float64    `json:"attackRange"`
	PatrolRange float64    `json:"patrolRange"`
	Damage      int        `json:"damage"`
	HurtInvuln  float64    `json:"hurtInvuln"`
}
