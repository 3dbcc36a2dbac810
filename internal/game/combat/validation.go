package combat

import (
	"fmt"

	"github.com/udisondev/questchronicles/internal/model"
)

// ValidateBattle validates the combatants before a battle opens.
//
// Checks:
//   - Both combatants exist
//   - Character alive
//   - Enemy alive
func ValidateBattle(c *model.Character, e *model.Enemy) error {
	if c == nil {
		return fmt.Errorf("character is nil")
	}
	if e == nil {
		return fmt.Errorf("enemy is nil")
	}
	if c.IsDead() {
		return fmt.Errorf("character %s cannot fight: %w", c.Name(), model.ErrCharacterDead)
	}
	if e.IsDead() {
		return fmt.Errorf("enemy %s is already dead", e.Name())
	}
	return nil
}
