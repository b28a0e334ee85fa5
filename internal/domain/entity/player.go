package entity

// PlayerStats carries the tuning a player is constructed from.
type PlayerStats struct {
	Width, Height       float64
	BoxWidth, BoxHeight float64
	MaxHealth           int
	MaxStamina          float64
	StaminaRegen        float64 // per second, only while grounded
	HurtInvuln          float64 // seconds of i-frames after a hit lands
}

// Player is the FSM-controlled entity.
type Player struct {
	Entity

	// Wall-climb stamina. Drained by the climb state, regenerated only
	// while ground-contacted.
	Stamina      float64
	MaxStamina   float64
	StaminaRegen float64

	HurtInvuln float64

	// Animation tag currently in use, mirrored from the active state for
	// the renderer.
	AnimTag string
}

// NewPlayer creates a player at (x, y) with full health and stamina.
func NewPlayer(id ID, x, y float64, stats PlayerStats) *Player {
	p := &Player{
		Entity:       NewEntity(id, x, y, stats.Width, stats.Height, stats.BoxWidth, stats.BoxHeight),
		Stamina:      stats.MaxStamina,
		MaxStamina:   stats.MaxStamina,
		StaminaRegen: stats.StaminaRegen,
		HurtInvuln:   stats.HurtInvuln,
		AnimTag:      "idle",
	}
	p.Health = stats.MaxHealth
	p.MaxHealth = stats.MaxHealth
	return p
}

// TakeDamage applies damage through the base path and, when a hit actually
// lands, starts the player's invulnerability window.
func (p *Player) TakeDamage(amount int) bool {
	if !p.Alive || p.Invulnerable {
		return false
	}
	died := p.Entity.TakeDamage(amount)
	if !died {
		p.SetInvulnerable(p.HurtInvuln)
	}
	return died
}

// DrainStamina removes stamina, clamped at zero.
func (p *Player) DrainStamina(amount float64) {
	p.Stamina -= amount
	if p.Stamina < 0 {
		p.Stamina = 0
	}
}

// HasStamina reports whether any climb stamina remains.
func (p *Player) HasStamina() bool {
	return p.Stamina > 0
}

// Tick advances the player's per-step timers: the invulnerability
// countdown, and stamina regeneration while grounded.
func (p *Player) Tick(dt float64) {
	p.TickInvulnerability(dt)
	if p.OnGround && p.Stamina < p.MaxStamina {
		p.Stamina += p.StaminaRegen * dt
		if p.Stamina > p.MaxStamina {
			p.Stamina = p.MaxStamina
		}
	}
}
