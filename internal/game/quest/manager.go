// Package quest tracks quest acceptance and completion for a character and
// pays out quest rewards.
package quest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/questchronicles/internal/model"
)

var (
	ErrInsufficientLevel  = errors.New("character level too low for quest")
	ErrRequirementsNotMet = errors.New("quest prerequisite not completed")
	ErrPrerequisiteCycle  = errors.New("quest prerequisite cycle")
)

// Catalog provides quest definitions. *data.QuestCatalog satisfies it.
type Catalog interface {
	Quest(id string) (model.Quest, error)
	All() []model.Quest
}

// Completion describes a finished quest and the rewards it paid.
type Completion struct {
	QuestID      string
	XP           int
	Gold         int
	LevelsGained int
}

// Manager applies quest rules against a quest catalog.
type Manager struct {
	catalog Catalog
}

// NewManager creates a quest manager over catalog.
func NewManager(catalog Catalog) *Manager {
	return &Manager{catalog: catalog}
}

// Accept adds questID to c's active quests.
// Accepting an already active quest is a successful no-op.
func (m *Manager) Accept(c *model.Character, questID string) error {
	q, err := m.catalog.Quest(questID)
	if err != nil {
		return err
	}
	if c.IsQuestCompleted(questID) {
		return fmt.Errorf("%w: %q", model.ErrQuestAlreadyCompleted, questID)
	}
	if c.IsQuestActive(questID) {
		return nil
	}
	if c.Level() < q.RequiredLevel {
		return fmt.Errorf("%w: %q needs level %d, have %d", ErrInsufficientLevel, questID, q.RequiredLevel, c.Level())
	}
	if q.HasPrerequisite() && !c.IsQuestCompleted(q.Prerequisite) {
		return fmt.Errorf("%w: %q requires %q", ErrRequirementsNotMet, questID, q.Prerequisite)
	}

	if err := c.StartQuest(questID); err != nil {
		return err
	}

	slog.Info("quest accepted", "character", c.Name(), "quest", questID)
	return nil
}

// Complete finishes an active quest and pays its XP and gold.
// XP goes through the regular level-up cascade.
func (m *Manager) Complete(c *model.Character, questID string) (Completion, error) {
	q, err := m.catalog.Quest(questID)
	if err != nil {
		return Completion{}, err
	}
	if !c.IsQuestActive(questID) {
		return Completion{}, fmt.Errorf("%w: %q", model.ErrQuestNotActive, questID)
	}
	if c.IsDead() {
		return Completion{}, fmt.Errorf("completing %q: %w", questID, model.ErrCharacterDead)
	}

	if err := c.FinishQuest(questID); err != nil {
		return Completion{}, err
	}
	levels, err := c.GainExperience(q.RewardXP)
	if err != nil {
		return Completion{}, fmt.Errorf("quest %q xp reward: %w", questID, err)
	}
	if _, err := c.AddGold(q.RewardGold); err != nil {
		return Completion{}, fmt.Errorf("quest %q gold reward: %w", questID, err)
	}

	slog.Info("quest completed",
		"character", c.Name(),
		"quest", questID,
		"xp", q.RewardXP,
		"gold", q.RewardGold,
		"levels", levels)

	return Completion{QuestID: questID, XP: q.RewardXP, Gold: q.RewardGold, LevelsGained: levels}, nil
}

// Abandon drops an active quest without reward.
func (m *Manager) Abandon(c *model.Character, questID string) error {
	if err := c.DropQuest(questID); err != nil {
		return err
	}
	slog.Info("quest abandoned", "character", c.Name(), "quest", questID)
	return nil
}

// CanAccept reports whether Accept would add questID as a new active quest.
func (m *Manager) CanAccept(c *model.Character, questID string) bool {
	q, err := m.catalog.Quest(questID)
	if err != nil {
		return false
	}
	return m.acceptable(c, q)
}

func (m *Manager) acceptable(c *model.Character, q model.Quest) bool {
	if c.IsQuestCompleted(q.ID) || c.IsQuestActive(q.ID) {
		return false
	}
	if c.Level() < q.RequiredLevel {
		return false
	}
	return !q.HasPrerequisite() || c.IsQuestCompleted(q.Prerequisite)
}

// Active returns definitions of c's active quests in acceptance order.
// IDs missing from the catalog are skipped.
func (m *Manager) Active(c *model.Character) []model.Quest {
	return m.resolve(c.ActiveQuests())
}

// Completed returns definitions of c's completed quests in completion order.
func (m *Manager) Completed(c *model.Character) []model.Quest {
	return m.resolve(c.CompletedQuests())
}

// Available returns quests c can accept right now, sorted by ID.
func (m *Manager) Available(c *model.Character) []model.Quest {
	var out []model.Quest
	for _, q := range m.catalog.All() {
		if m.acceptable(c, q) {
			out = append(out, q)
		}
	}
	return out
}

func (m *Manager) resolve(ids []string) []model.Quest {
	out := make([]model.Quest, 0, len(ids))
	for _, id := range ids {
		q, err := m.catalog.Quest(id)
		if err != nil {
			slog.Warn("quest missing from catalog", "quest", id)
			continue
		}
		out = append(out, q)
	}
	return out
}
