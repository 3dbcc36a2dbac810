package model

// EnemyTemplate describes an enemy type. Templates are shared and never
// mutated; every encounter gets its own Enemy built by NewEnemy.
type EnemyTemplate struct {
	Type       string
	Name       string
	Health     int
	Strength   int
	Magic      int
	XPReward   int
	GoldReward int
}

// Enemy is the opponent of a single battle. Never persisted.
type Enemy struct {
	tmpl      EnemyTemplate
	health    int
	maxHealth int
}

// NewEnemy creates a full-health enemy from a template copy.
func NewEnemy(tmpl EnemyTemplate) *Enemy {
	return &Enemy{
		tmpl:      tmpl,
		health:    tmpl.Health,
		maxHealth: tmpl.Health,
	}
}

func (e *Enemy) Type() string    { return e.tmpl.Type }
func (e *Enemy) Name() string    { return e.tmpl.Name }
func (e *Enemy) Health() int     { return e.health }
func (e *Enemy) MaxHealth() int  { return e.maxHealth }
func (e *Enemy) Strength() int   { return e.tmpl.Strength }
func (e *Enemy) Magic() int      { return e.tmpl.Magic }
func (e *Enemy) XPReward() int   { return e.tmpl.XPReward }
func (e *Enemy) GoldReward() int { return e.tmpl.GoldReward }

// IsDead reports whether health dropped to zero.
func (e *Enemy) IsDead() bool {
	return e.health <= 0
}

// TakeDamage subtracts damage from health, stopping at zero.
// Returns the HP actually lost.
func (e *Enemy) TakeDamage(damage int) int {
	if damage <= 0 {
		return 0
	}
	lost := min(damage, e.health)
	e.health -= lost
	return lost
}
