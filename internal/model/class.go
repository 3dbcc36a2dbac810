package model

import (
	"fmt"
	"strings"
)

// Class задаёт класс персонажа. Фиксируется при создании и определяет
// базовые характеристики и special ability.
type Class uint8

const (
	ClassWarrior Class = iota + 1
	ClassMage
	ClassRogue
	ClassCleric
)

// Classes lists every playable class in menu order.
var Classes = []Class{ClassWarrior, ClassMage, ClassRogue, ClassCleric}

// BaseStats holds level 1 attributes for a class.
type BaseStats struct {
	Health   int
	Strength int
	Magic    int
}

var classBaseStats = map[Class]BaseStats{
	ClassWarrior: {Health: 120, Strength: 15, Magic: 5},
	ClassMage:    {Health: 80, Strength: 8, Magic: 20},
	ClassRogue:   {Health: 90, Strength: 12, Magic: 10},
	ClassCleric:  {Health: 100, Strength: 10, Magic: 15},
}

// String returns the class name as stored in save files.
func (c Class) String() string {
	switch c {
	case ClassWarrior:
		return "Warrior"
	case ClassMage:
		return "Mage"
	case ClassRogue:
		return "Rogue"
	case ClassCleric:
		return "Cleric"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the playable classes.
func (c Class) Valid() bool {
	_, ok := classBaseStats[c]
	return ok
}

// BaseStats returns level 1 attributes of the class.
func (c Class) BaseStats() (BaseStats, bool) {
	s, ok := classBaseStats[c]
	return s, ok
}

// ParseClass converts a class name (case-insensitive) to Class.
func ParseClass(name string) (Class, error) {
	name = strings.TrimSpace(name)
	for _, c := range Classes {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: Warrior, Mage, Rogue, Cleric)", ErrInvalidClass, name)
}
