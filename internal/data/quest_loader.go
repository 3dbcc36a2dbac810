package data

import (
	"log/slog"
	"strings"

	"github.com/udisondev/questchronicles/internal/model"
)

// NoPrerequisite marks a quest without a prerequisite in data files.
const NoPrerequisite = "NONE"

// LoadQuests parses a quest data file into a catalog.
//
// Block format:
//
//	QUEST_ID: intro_quest
//	TITLE: The Beginning
//	DESCRIPTION: Defeat a goblin threatening the town.
//	REWARD_XP: 50
//	REWARD_GOLD: 20
//	REQUIRED_LEVEL: 1
//	PREREQUISITE: NONE
func LoadQuests(path string) (*QuestCatalog, error) {
	blocks, err := readBlocks(path)
	if err != nil {
		return nil, err
	}

	quests := make([]model.Quest, 0, len(blocks))
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		q, err := parseQuest(b)
		if err != nil {
			return nil, err
		}
		if seen[q.ID] {
			return nil, b.errorf("duplicate quest id %q", q.ID)
		}
		seen[q.ID] = true
		quests = append(quests, q)
	}

	slog.Debug("loaded quest catalog", "path", path, "count", len(quests))
	return NewQuestCatalog(quests...), nil
}

func parseQuest(b block) (model.Quest, error) {
	var q model.Quest
	var err error

	if q.ID, err = b.str("QUEST_ID"); err != nil {
		return q, err
	}
	if err := model.ValidateID(q.ID); err != nil {
		return q, b.errorf("QUEST_ID: %v", err)
	}
	if q.Title, err = b.str("TITLE"); err != nil {
		return q, err
	}
	if q.Description, err = b.str("DESCRIPTION"); err != nil {
		return q, err
	}
	if q.RewardXP, err = b.nonNegative("REWARD_XP"); err != nil {
		return q, err
	}
	if q.RewardGold, err = b.nonNegative("REWARD_GOLD"); err != nil {
		return q, err
	}
	if q.RequiredLevel, err = b.nonNegative("REQUIRED_LEVEL"); err != nil {
		return q, err
	}
	if q.RequiredLevel < model.StartingLevel {
		return q, b.errorf("quest %q: REQUIRED_LEVEL must be at least %d", q.ID, model.StartingLevel)
	}

	prereq, err := b.str("PREREQUISITE")
	if err != nil {
		return q, err
	}
	if !strings.EqualFold(prereq, NoPrerequisite) {
		if err := model.ValidateID(prereq); err != nil {
			return q, b.errorf("quest %q PREREQUISITE: %v", q.ID, err)
		}
		q.Prerequisite = prereq
	}

	return q, nil
}
