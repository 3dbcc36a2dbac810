package quest

import (
	"fmt"
	"slices"

	"github.com/udisondev/questchronicles/internal/model"
)

// Totals is the sum of rewards over completed quests.
type Totals struct {
	XP   int
	Gold int
}

// PrerequisiteChain follows prerequisites back from questID and returns the
// chain earliest first, ending with questID.
func (m *Manager) PrerequisiteChain(questID string) ([]string, error) {
	var chain []string
	seen := make(map[string]struct{})

	for current := questID; ; {
		if _, ok := seen[current]; ok {
			return nil, fmt.Errorf("%w: at %q", ErrPrerequisiteCycle, current)
		}
		seen[current] = struct{}{}

		q, err := m.catalog.Quest(current)
		if err != nil {
			return nil, err
		}
		chain = append(chain, current)
		if !q.HasPrerequisite() {
			break
		}
		current = q.Prerequisite
	}

	slices.Reverse(chain)
	return chain, nil
}

// CompletionPercentage returns the share of catalog quests c has
// completed, 0..100. An empty catalog yields 0.
func (m *Manager) CompletionPercentage(c *model.Character) float64 {
	all := m.catalog.All()
	if len(all) == 0 {
		return 0
	}
	done := 0
	for _, q := range all {
		if c.IsQuestCompleted(q.ID) {
			done++
		}
	}
	return float64(done) / float64(len(all)) * 100
}

// TotalRewardsEarned sums the rewards of c's completed quests.
func (m *Manager) TotalRewardsEarned(c *model.Character) Totals {
	var t Totals
	for _, q := range m.Completed(c) {
		t.XP += q.RewardXP
		t.Gold += q.RewardGold
	}
	return t
}

// ByLevel returns quests whose required level is within [minLevel, maxLevel],
// sorted by ID.
func (m *Manager) ByLevel(minLevel, maxLevel int) []model.Quest {
	var out []model.Quest
	for _, q := range m.catalog.All() {
		if q.RequiredLevel >= minLevel && q.RequiredLevel <= maxLevel {
			out = append(out, q)
		}
	}
	return out
}

// ValidatePrerequisites checks that every prerequisite names a known quest
// and that no prerequisite chain loops.
func (m *Manager) ValidatePrerequisites() error {
	for _, q := range m.catalog.All() {
		if !q.HasPrerequisite() {
			continue
		}
		if _, err := m.catalog.Quest(q.Prerequisite); err != nil {
			return fmt.Errorf("quest %q prerequisite: %w", q.ID, err)
		}
		if _, err := m.PrerequisiteChain(q.ID); err != nil {
			return err
		}
	}
	return nil
}
