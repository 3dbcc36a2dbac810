package data

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Data file names inside the data directory.
const (
	ItemsFile  = "items.txt"
	QuestsFile = "quests.txt"
)

const defaultItems = `ITEM_ID: health_potion
NAME: Health Potion
TYPE: consumable
EFFECT: health:25
COST: 25
DESCRIPTION: Restores 25 health.

ITEM_ID: greater_potion
NAME: Greater Health Potion
TYPE: consumable
EFFECT: health:60
COST: 60
DESCRIPTION: Restores 60 health.

ITEM_ID: strength_tonic
NAME: Strength Tonic
TYPE: consumable
EFFECT: strength:1
COST: 150
DESCRIPTION: Permanently increases strength by 1.

ITEM_ID: iron_sword
NAME: Iron Sword
TYPE: weapon
EFFECT: strength:5
COST: 100
DESCRIPTION: A basic but reliable iron sword.

ITEM_ID: steel_sword
NAME: Steel Sword
TYPE: weapon
EFFECT: strength:9
COST: 220
DESCRIPTION: A well balanced steel blade.

ITEM_ID: oak_staff
NAME: Oak Staff
TYPE: weapon
EFFECT: magic:6
COST: 120
DESCRIPTION: A staff that focuses arcane power.

ITEM_ID: leather_armor
NAME: Leather Armor
TYPE: armor
EFFECT: max_health:15
COST: 80
DESCRIPTION: Light armor made of boiled leather.

ITEM_ID: chain_mail
NAME: Chain Mail
TYPE: armor
EFFECT: max_health:30
COST: 200
DESCRIPTION: Interlocking rings of iron.
`

const defaultQuests = `QUEST_ID: intro_quest
TITLE: The Beginning
DESCRIPTION: Defeat a goblin threatening the town.
REWARD_XP: 50
REWARD_GOLD: 20
REQUIRED_LEVEL: 1
PREREQUISITE: NONE

QUEST_ID: herb_gathering
TITLE: Herb Gathering
DESCRIPTION: Collect healing herbs for the village healer.
REWARD_XP: 30
REWARD_GOLD: 15
REQUIRED_LEVEL: 1
PREREQUISITE: NONE

QUEST_ID: goblin_menace
TITLE: The Goblin Menace
DESCRIPTION: Drive the goblin band out of the old mill.
REWARD_XP: 100
REWARD_GOLD: 40
REQUIRED_LEVEL: 1
PREREQUISITE: intro_quest

QUEST_ID: orc_warband
TITLE: Orc Warband
DESCRIPTION: Break the orc warband camped on the ridge.
REWARD_XP: 250
REWARD_GOLD: 100
REQUIRED_LEVEL: 3
PREREQUISITE: goblin_menace

QUEST_ID: dragon_lair
TITLE: The Dragon's Lair
DESCRIPTION: Slay the dragon nesting in the northern peaks.
REWARD_XP: 1000
REWARD_GOLD: 500
REQUIRED_LEVEL: 6
PREREQUISITE: orc_warband
`

// CreateDefaultFiles writes the starter item and quest files into dir.
// Existing files are left untouched.
func CreateDefaultFiles(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{ItemsFile, defaultItems},
		{QuestsFile, defaultQuests},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		slog.Info("created default data file", "path", path)
	}

	return nil
}
