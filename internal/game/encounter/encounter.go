// Package encounter picks the opponent for a character's next battle.
package encounter

import (
	"github.com/udisondev/questchronicles/internal/data"
	"github.com/udisondev/questchronicles/internal/model"
)

// Level thresholds between enemy tiers.
const (
	MaxGoblinLevel = 2
	MaxOrcLevel    = 5
)

// EnemyTypeForLevel maps a character level to an enemy type:
// level ≤ 2 → goblin, 3..5 → orc, 6+ → dragon.
func EnemyTypeForLevel(level int) string {
	switch {
	case level <= MaxGoblinLevel:
		return data.EnemyGoblin
	case level <= MaxOrcLevel:
		return data.EnemyOrc
	default:
		return data.EnemyDragon
	}
}

// Select returns a fresh enemy for a character of the given level.
func Select(level int) (*model.Enemy, error) {
	return data.NewEnemy(EnemyTypeForLevel(level))
}

// For returns a fresh enemy matched to c's level.
func For(c *model.Character) (*model.Enemy, error) {
	return Select(c.Level())
}
