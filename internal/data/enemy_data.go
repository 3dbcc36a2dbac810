package data

import (
	"fmt"
	"slices"

	"github.com/udisondev/questchronicles/internal/model"
)

// Enemy type identifiers.
const (
	EnemyGoblin = "goblin"
	EnemyOrc    = "orc"
	EnemyDragon = "dragon"
)

// Шаблоны противников по типу.
// Шаблоны не изменяются: NewEnemy всегда строит свежий экземпляр.
var enemyTemplates = map[string]model.EnemyTemplate{
	EnemyGoblin: {Type: EnemyGoblin, Name: "Goblin", Health: 50, Strength: 8, Magic: 2, XPReward: 25, GoldReward: 10},
	EnemyOrc:    {Type: EnemyOrc, Name: "Orc", Health: 80, Strength: 12, Magic: 5, XPReward: 50, GoldReward: 25},
	EnemyDragon: {Type: EnemyDragon, Name: "Dragon", Health: 200, Strength: 25, Magic: 15, XPReward: 200, GoldReward: 100},
}

// EnemyTemplate returns the template for enemyType.
func EnemyTemplate(enemyType string) (model.EnemyTemplate, bool) {
	tmpl, ok := enemyTemplates[enemyType]
	return tmpl, ok
}

// EnemyTypes returns all known enemy types, sorted.
func EnemyTypes() []string {
	types := make([]string, 0, len(enemyTemplates))
	for t := range enemyTemplates {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// NewEnemy creates a fresh enemy of the given type.
func NewEnemy(enemyType string) (*model.Enemy, error) {
	tmpl, ok := enemyTemplates[enemyType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemyType, enemyType)
	}
	return model.NewEnemy(tmpl), nil
}
