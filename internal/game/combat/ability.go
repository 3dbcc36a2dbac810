package combat

import (
	"github.com/udisondev/questchronicles/internal/model"
)

// AbilityOutcome is what a special ability did on use.
type AbilityOutcome struct {
	Damage   int
	Healed   int
	Critical bool
}

// Ability is a class special ability, used instead of a basic attack.
type Ability interface {
	Name() string
	Use(user *model.Character, target *model.Enemy, rng Rand) AbilityOutcome
}

// Один обработчик на каждый класс.
var abilities = map[model.Class]Ability{
	model.ClassWarrior: powerStrike{},
	model.ClassMage:    fireball{},
	model.ClassRogue:   criticalStrike{},
	model.ClassCleric:  clericHeal{},
}

// AbilityFor returns the special ability of class.
func AbilityFor(class model.Class) (Ability, bool) {
	a, ok := abilities[class]
	return a, ok
}

// powerStrike deals double strength damage.
type powerStrike struct{}

func (powerStrike) Name() string { return "Power Strike" }

func (powerStrike) Use(user *model.Character, target *model.Enemy, _ Rand) AbilityOutcome {
	dmg := user.Strength() * 2
	target.TakeDamage(dmg)
	return AbilityOutcome{Damage: dmg}
}

// fireball deals double magic damage.
type fireball struct{}

func (fireball) Name() string { return "Fireball" }

func (fireball) Use(user *model.Character, target *model.Enemy, _ Rand) AbilityOutcome {
	dmg := user.Magic() * 2
	target.TakeDamage(dmg)
	return AbilityOutcome{Damage: dmg}
}

// criticalStrike deals triple strength on a successful roll, plain
// strength otherwise.
type criticalStrike struct{}

func (criticalStrike) Name() string { return "Critical Strike" }

func (criticalStrike) Use(user *model.Character, target *model.Enemy, rng Rand) AbilityOutcome {
	if roll(rng, CriticalChance) {
		dmg := user.Strength() * 3
		target.TakeDamage(dmg)
		return AbilityOutcome{Damage: dmg, Critical: true}
	}
	dmg := user.Strength()
	target.TakeDamage(dmg)
	return AbilityOutcome{Damage: dmg}
}

// clericHeal restores up to ClericHealAmount HP to the user.
type clericHeal struct{}

func (clericHeal) Name() string { return "Heal" }

func (clericHeal) Use(user *model.Character, _ *model.Enemy, _ Rand) AbilityOutcome {
	return AbilityOutcome{Healed: user.Heal(ClericHealAmount)}
}
