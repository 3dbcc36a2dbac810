package model

import (
	"fmt"
	"strings"
)

const (
	StartingLevel = 1
	StartingGold  = 100

	// Прирост характеристик за каждый уровень.
	LevelUpMaxHealth = 10
	LevelUpStrength  = 2
	LevelUpMagic     = 2
)

// ExperienceForNextLevel returns the XP needed to advance from level.
// This is the single authoritative threshold used by combat and quest rewards.
func ExperienceForNextLevel(level int) int {
	return level * 100
}

// Character хранит персонажа игрока: характеристики, золото, инвентарь,
// экипировка и журнал квестов.
//
// Character is not safe for concurrent use: a game session owns it
// exclusively and every mutation goes through its methods.
type Character struct {
	name  string
	class Class

	level      int
	health     int
	maxHealth  int
	strength   int
	magic      int
	experience int
	gold       int

	inventory      []string
	equippedWeapon string
	equippedArmor  string

	activeQuests    []string
	completedQuests []string
}

// NewCharacter создаёт персонажа 1 уровня с базовыми характеристиками класса.
func NewCharacter(name string, class Class) (*Character, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	base, ok := class.BaseStats()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClass, class)
	}

	return &Character{
		name:      strings.TrimSpace(name),
		class:     class,
		level:     StartingLevel,
		health:    base.Health,
		maxHealth: base.Health,
		strength:  base.Strength,
		magic:     base.Magic,
		gold:      StartingGold,
	}, nil
}

// ValidateName checks that name can be used as a save identifier.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.ContainsAny(trimmed, "/\\:,\r\n") {
		return fmt.Errorf("%w: %q contains reserved characters", ErrInvalidName, name)
	}
	return nil
}

func (c *Character) Name() string    { return c.name }
func (c *Character) Class() Class    { return c.class }
func (c *Character) Level() int      { return c.level }
func (c *Character) Health() int     { return c.health }
func (c *Character) MaxHealth() int  { return c.maxHealth }
func (c *Character) Strength() int   { return c.strength }
func (c *Character) Magic() int      { return c.magic }
func (c *Character) Experience() int { return c.experience }
func (c *Character) Gold() int       { return c.gold }

// IsDead reports whether health dropped to zero.
func (c *Character) IsDead() bool {
	return c.health <= 0
}

// GainExperience adds XP and processes every level-up the total allows.
// Each level-up consumes level*100 XP, raises max health by 10, strength
// and magic by 2 and fully restores health. Returns the number of levels gained.
func (c *Character) GainExperience(amount int) (int, error) {
	if c.IsDead() {
		return 0, fmt.Errorf("gaining experience: %w", ErrCharacterDead)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidExperience, amount)
	}

	c.experience += amount

	gained := 0
	for c.experience >= ExperienceForNextLevel(c.level) {
		c.experience -= ExperienceForNextLevel(c.level)
		c.level++
		c.maxHealth += LevelUpMaxHealth
		c.strength += LevelUpStrength
		c.magic += LevelUpMagic
		c.health = c.maxHealth
		gained++
	}

	return gained, nil
}

// AddGold applies delta (positive or negative) and returns the new total.
// The total never drops below zero.
func (c *Character) AddGold(delta int) (int, error) {
	total := c.gold + delta
	if total < 0 {
		return c.gold, fmt.Errorf("%w: have %d, delta %d", ErrInvalidGoldDelta, c.gold, delta)
	}
	c.gold = total
	return c.gold, nil
}

// Heal restores up to amount HP without exceeding max health.
// Dead characters cannot be healed. Returns the HP actually restored.
func (c *Character) Heal(amount int) int {
	if c.IsDead() || amount <= 0 {
		return 0
	}
	healed := min(amount, c.maxHealth-c.health)
	c.health += healed
	return healed
}

// TakeDamage subtracts damage from health, stopping at zero.
// Returns the HP actually lost.
func (c *Character) TakeDamage(damage int) int {
	if damage <= 0 {
		return 0
	}
	lost := min(damage, c.health)
	c.health -= lost
	return lost
}

// Revive returns a dead character to half of max health (rounded down).
// Returns false and does nothing if the character is alive.
func (c *Character) Revive() bool {
	if c.health > 0 {
		return false
	}
	c.health = c.maxHealth / 2
	return true
}

// ApplyStatEffect adds the effect delta to its stat.
// Health is clamped to 0..max health; lowering max health below current
// health pulls health down with it.
func (c *Character) ApplyStatEffect(e Effect) error {
	switch e.Stat {
	case StatHealth:
		c.health = max(0, min(c.health+e.Delta, c.maxHealth))
	case StatMaxHealth:
		next := c.maxHealth + e.Delta
		if next < 1 {
			return fmt.Errorf("%w: max_health %d%+d", ErrStatUnderflow, c.maxHealth, e.Delta)
		}
		c.maxHealth = next
		if c.health > c.maxHealth {
			c.health = c.maxHealth
		}
	case StatStrength:
		next := c.strength + e.Delta
		if next < 0 {
			return fmt.Errorf("%w: strength %d%+d", ErrStatUnderflow, c.strength, e.Delta)
		}
		c.strength = next
	case StatMagic:
		next := c.magic + e.Delta
		if next < 0 {
			return fmt.Errorf("%w: magic %d%+d", ErrStatUnderflow, c.magic, e.Delta)
		}
		c.magic = next
	default:
		return fmt.Errorf("%w: %d", ErrInvalidStat, e.Stat)
	}
	return nil
}

// CanApply reports whether ApplyStatEffect(e) would succeed without mutating c.
func (c *Character) CanApply(e Effect) error {
	switch e.Stat {
	case StatHealth:
		return nil
	case StatMaxHealth:
		if c.maxHealth+e.Delta < 1 {
			return fmt.Errorf("%w: max_health %d%+d", ErrStatUnderflow, c.maxHealth, e.Delta)
		}
	case StatStrength:
		if c.strength+e.Delta < 0 {
			return fmt.Errorf("%w: strength %d%+d", ErrStatUnderflow, c.strength, e.Delta)
		}
	case StatMagic:
		if c.magic+e.Delta < 0 {
			return fmt.Errorf("%w: magic %d%+d", ErrStatUnderflow, c.magic, e.Delta)
		}
	default:
		return fmt.Errorf("%w: %d", ErrInvalidStat, e.Stat)
	}
	return nil
}
