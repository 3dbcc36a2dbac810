package combat

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/questchronicles/internal/model"
)

// RewardVictory awards the enemy's XP and gold to the winner.
// Level-ups cascade inside GainExperience; health is restored on each.
// Returns the number of levels gained.
func RewardVictory(c *model.Character, e *model.Enemy) (int, error) {
	oldLevel := c.Level()

	levels, err := c.GainExperience(e.XPReward())
	if err != nil {
		return 0, fmt.Errorf("rewarding xp: %w", err)
	}
	if _, err := c.AddGold(e.GoldReward()); err != nil {
		return levels, fmt.Errorf("rewarding gold: %w", err)
	}

	if levels > 0 {
		slog.Info("character leveled up",
			"character", c.Name(),
			"oldLevel", oldLevel,
			"newLevel", c.Level(),
			"exp", c.Experience())
	}

	return levels, nil
}
