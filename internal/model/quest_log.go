package model

import (
	"fmt"
	"slices"
)

// ActiveQuests returns accepted quest IDs in acceptance order.
func (c *Character) ActiveQuests() []string {
	return slices.Clone(c.activeQuests)
}

// CompletedQuests returns finished quest IDs in completion order.
func (c *Character) CompletedQuests() []string {
	return slices.Clone(c.completedQuests)
}

// IsQuestActive reports whether questID is in progress.
func (c *Character) IsQuestActive(questID string) bool {
	return slices.Contains(c.activeQuests, questID)
}

// IsQuestCompleted reports whether questID was finished.
func (c *Character) IsQuestCompleted(questID string) bool {
	return slices.Contains(c.completedQuests, questID)
}

// StartQuest adds questID to the active set.
func (c *Character) StartQuest(questID string) error {
	if c.IsQuestCompleted(questID) {
		return fmt.Errorf("%w: %q", ErrQuestAlreadyCompleted, questID)
	}
	if c.IsQuestActive(questID) {
		return fmt.Errorf("%w: %q", ErrQuestAlreadyActive, questID)
	}
	c.activeQuests = append(c.activeQuests, questID)
	return nil
}

// FinishQuest moves questID from the active set to the completed set.
func (c *Character) FinishQuest(questID string) error {
	idx := slices.Index(c.activeQuests, questID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrQuestNotActive, questID)
	}
	c.activeQuests = slices.Delete(c.activeQuests, idx, idx+1)
	c.completedQuests = append(c.completedQuests, questID)
	return nil
}

// DropQuest removes questID from the active set without completing it.
func (c *Character) DropQuest(questID string) error {
	idx := slices.Index(c.activeQuests, questID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrQuestNotActive, questID)
	}
	c.activeQuests = slices.Delete(c.activeQuests, idx, idx+1)
	return nil
}
