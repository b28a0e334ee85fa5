package system

import (
	"github.com/seojinpark/blade/internal/domain/entity"
	"github.com/seojinpark/blade/internal/domain/geom"
)

// attackParams is one row of the combo table.
type attackParams struct {
	duration float64
	damage   int
	animTag  string
}

// attackTable is the fixed three-hit combo chain, indexed by attack
// number minus one.
var attackTable = [...]attackParams{
	{duration: 0.3, damage: 10, animTag: "attack1"},
	{duration: 0.35, damage: 15, animTag: "attack2"},
	{duration: 0.5, damage: 25, animTag: "attack3"},
}

const (
	// comboWindowFraction is the point within an attack where a buffered
	// follow-up becomes accepted. Late enough to reward deliberate
	// timing over mashing.
	comboWindowFraction = 0.7

	// attackMomentumRetention scales horizontal velocity on swing start.
	attackMomentumRetention = 0.3

	attackHitboxWidth  = 40.0
	attackHitboxHeight = 48.0
)

// AttackState runs the three-hit combo chain. Chaining re-runs the swing
// setup without leaving the state, so the machine sees one long attack;
// each swing still gets a fresh timer, hitbox and hit-target set.
type AttackState struct {
	index         int
	elapsed       float64
	comboEligible bool
	comboBuffered bool
	hit           map[entity.ID]struct{}
	hitbox        geom.Rect
	active        bool
}

// NewAttackState creates the attack state at combo index 1.
func NewAttackState() *AttackState {
	return &AttackState{
		index: 1,
		hit:   make(map[entity.ID]struct{}),
	}
}

func (s *AttackState) ID() StateID { return StateAttack }

// AnimationTag names the clip for the current swing: attack1..attack3.
func (s *AttackState) AnimationTag() string { return s.params().animTag }

// params returns the current swing's table row, index clamped to the
// table.
func (s *AttackState) params() attackParams {
	i := s.index
	if i < 1 {
		i = 1
	}
	if i > len(attackTable) {
		i = len(attackTable)
	}
	return attackTable[i-1]
}

func (s *AttackState) Enter(p *entity.Player) {
	s.begin(p)
}

// begin starts the swing at the current index: fresh timer, flags,
// hit-target set and hitbox, and damped momentum. Called on state entry
// and again on every combo chain.
func (s *AttackState) begin(p *entity.Player) {
	s.elapsed = 0
	s.comboEligible = false
	s.comboBuffered = false
	clear(s.hit)
	s.placeHitbox(p)
	s.active = true
	p.Velocity.X *= attackMomentumRetention
}

// placeHitbox positions the swing hitbox flush against the leading edge
// of the collision box, vertically centered on it.
func (s *AttackState) placeHitbox(p *entity.Player) {
	box := geom.Rect{W: attackHitboxWidth, H: attackHitboxHeight}
	if p.FacingRight {
		box.X = p.Hitbox.Right()
	} else {
		box.X = p.Hitbox.Left() - attackHitboxWidth
	}
	box.Y = p.Hitbox.CenterY() - attackHitboxHeight/2
	s.hitbox = box
}

func (s *AttackState) Update(p *entity.Player, in Snapshot, dt float64) StateID {
	par := s.params()
	s.elapsed += dt

	if !s.comboEligible && s.elapsed >= par.duration*comboWindowFraction {
		s.comboEligible = true
	}
	// Buffered, not acted on: the chain happens at swing end.
	if s.comboEligible && in.JustPressed(ActionAttack) {
		s.comboBuffered = true
	}

	if s.elapsed < par.duration {
		return ""
	}
	if s.comboBuffered && s.index < len(attackTable) {
		s.index++
		s.begin(p)
		return ""
	}
	s.index = 1
	if p.OnGround {
		return StateIdle
	}
	return StateFall
}

// Exit withdraws the hitbox and rewinds the chain, covering forced
// transitions (respawn) as well as natural swing end.
func (s *AttackState) Exit(p *entity.Player) {
	s.active = false
	s.index = 1
}

// ActiveHitbox returns the current swing's hitbox while one is out.
func (s *AttackState) ActiveHitbox() (geom.Rect, bool) {
	if !s.active {
		return geom.Rect{}, false
	}
	return s.hitbox, true
}

// Damage returns the current swing's damage.
func (s *AttackState) Damage() int {
	return s.params().damage
}

// HasHit reports whether the target was already hit by the current swing.
func (s *AttackState) HasHit(id entity.ID) bool {
	_, ok := s.hit[id]
	return ok
}

// MarkHit records the target as hit for the rest of the current swing.
func (s *AttackState) MarkHit(id entity.ID) {
	s.hit[id] = struct{}{}
}

// Index returns the current combo index (1..3).
func (s *AttackState) Index() int { return s.index }

// ComboBuffered reports whether a follow-up swing is queued.
func (s *AttackState) ComboBuffered() bool { return s.comboBuffered }

// ComboEligible reports whether the chain window is open.
func (s *AttackState) ComboEligible() bool { return s.comboEligible }
