package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/questchronicles/internal/config"
	"github.com/udisondev/questchronicles/internal/data"
	"github.com/udisondev/questchronicles/internal/db"
	"github.com/udisondev/questchronicles/internal/game/session"
	"github.com/udisondev/questchronicles/internal/model"
)

func testCatalogs() session.Catalogs {
	return session.Catalogs{
		Items: data.NewItemCatalog(
			model.Item{ID: "chain_mail", Name: "Chain Mail", Type: model.ItemTypeArmor, Effect: model.Effect{Stat: model.StatMaxHealth, Delta: 30}, Cost: 200},
			model.Item{ID: "health_potion", Name: "Health Potion", Type: model.ItemTypeConsumable, Effect: model.Effect{Stat: model.StatHealth, Delta: 25}, Cost: 25},
		),
		Quests: data.NewQuestCatalog(
			model.Quest{ID: "intro_quest", Title: "The Beginning", RewardXP: 50, RewardGold: 20, RequiredLevel: 1},
		),
	}
}

// runScript feeds one input line per element and returns everything printed.
func runScript(t *testing.T, repo db.CharacterRepository, lines ...string) string {
	t.Helper()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	app := New(in, &out, repo, testCatalogs(), session.NewRand(1), config.DefaultGame().Rules)

	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func newTestRepo(t *testing.T) *db.FileRepository {
	t.Helper()
	repo, err := db.NewFileRepository(t.TempDir())
	require.NoError(t, err)
	return repo
}

func TestNewGame_ShopQuestAndSave(t *testing.T) {
	repo := newTestRepo(t)

	out := runScript(t, repo,
		"1", "Aria", "Mage", // new game
		"5", "2", "b", // buy a health potion
		"3", "4", "intro_quest", "6", "intro_quest", "7", // accept and complete
		"6", // save and quit
		"4", // exit
	)

	assert.Contains(t, out, "Created Aria the Mage!")
	assert.Contains(t, out, "Bought Health Potion.")
	assert.Contains(t, out, "Quest intro_quest accepted.")
	assert.Contains(t, out, "Quest complete! Gained 50 XP and 20 gold.")
	assert.Contains(t, out, "Thanks for playing Quest Chronicles!")

	c, err := repo.Load(context.Background(), "Aria")
	require.NoError(t, err)
	assert.Equal(t, model.ClassMage, c.Class())
	assert.Equal(t, model.StartingGold-25+20, c.Gold())
	assert.Equal(t, 50, c.Experience())
	assert.Equal(t, []string{"health_potion"}, c.Inventory())
	assert.Equal(t, []string{"intro_quest"}, c.CompletedQuests())
	assert.Empty(t, c.ActiveQuests())
}

func TestInventory_EquipAndUnequip(t *testing.T) {
	repo := newTestRepo(t)

	c, err := model.NewCharacter("Brom", model.ClassWarrior)
	require.NoError(t, err)
	require.NoError(t, c.AddItem("chain_mail"))
	require.NoError(t, repo.Save(context.Background(), c))
	maxHealth := c.MaxHealth()

	out := runScript(t, repo,
		"2", "1", // load Brom
		"2", "3", "chain_mail", // equip armor
		"2", "health_potion", // wrong slot type
		"7",
		"6", "4",
	)
	assert.Contains(t, out, "Equipped chain_mail.")
	assert.Contains(t, out, "Cannot equip:")

	loaded, err := repo.Load(context.Background(), "Brom")
	require.NoError(t, err)
	assert.Equal(t, "chain_mail", loaded.Equipped(model.SlotArmor))
	assert.Equal(t, maxHealth+30, loaded.MaxHealth())
	assert.Empty(t, loaded.Inventory())
}

func TestDeadCharacter_Revive(t *testing.T) {
	repo := newTestRepo(t)

	c, err := model.NewCharacter("Fallen", model.ClassWarrior)
	require.NoError(t, err)
	c.TakeDamage(c.MaxHealth())
	require.True(t, c.IsDead())
	require.NoError(t, repo.Save(context.Background(), c))

	out := runScript(t, repo, "2", "1", "y", "6", "4")
	assert.Contains(t, out, "You have fallen")
	assert.Contains(t, out, "You have been revived")

	loaded, err := repo.Load(context.Background(), "Fallen")
	require.NoError(t, err)
	assert.False(t, loaded.IsDead())
	assert.Equal(t, model.StartingGold-20, loaded.Gold())
}

func TestDeadCharacter_DeclineRevive(t *testing.T) {
	repo := newTestRepo(t)

	c, err := model.NewCharacter("Fallen", model.ClassRogue)
	require.NoError(t, err)
	c.TakeDamage(c.MaxHealth())
	require.NoError(t, repo.Save(context.Background(), c))

	out := runScript(t, repo, "2", "1", "n", "4")
	assert.Contains(t, out, "Game over.")

	loaded, err := repo.Load(context.Background(), "Fallen")
	require.NoError(t, err)
	assert.True(t, loaded.IsDead())
	assert.Equal(t, model.StartingGold, loaded.Gold())
}

func TestNewGame_ExistingSave(t *testing.T) {
	repo := newTestRepo(t)

	c, err := model.NewCharacter("Aria", model.ClassRogue)
	require.NoError(t, err)
	_, err = c.AddGold(400)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))

	t.Run("declined keeps the save", func(t *testing.T) {
		out := runScript(t, repo, "1", "Aria", "n", "4")
		assert.Contains(t, out, "A save for Aria already exists.")
		assert.Contains(t, out, "Cancelled.")

		loaded, err := repo.Load(context.Background(), "Aria")
		require.NoError(t, err)
		assert.Equal(t, model.ClassRogue, loaded.Class())
		assert.Equal(t, 500, loaded.Gold())
	})

	t.Run("confirmed overwrites", func(t *testing.T) {
		out := runScript(t, repo, "1", "Aria", "y", "Mage", "6", "4")
		assert.Contains(t, out, "Created Aria the Mage!")

		loaded, err := repo.Load(context.Background(), "Aria")
		require.NoError(t, err)
		assert.Equal(t, model.ClassMage, loaded.Class())
		assert.Equal(t, model.StartingGold, loaded.Gold())
	})
}

func TestDeleteCharacter(t *testing.T) {
	repo := newTestRepo(t)

	c, err := model.NewCharacter("Gone", model.ClassCleric)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))

	out := runScript(t, repo, "3", "1", "y", "4")
	assert.Contains(t, out, "Gone deleted.")

	names, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRun_InvalidInput(t *testing.T) {
	repo := newTestRepo(t)

	out := runScript(t, repo,
		"9", "abc", // bad menu choices
		"1", "Bad/Name", // rejected name
		"1", "Neo", "Ninja", // rejected class
		"2", // nothing to load
		"4",
	)
	assert.Contains(t, out, "Invalid choice.")
	assert.Contains(t, out, "Invalid name:")
	assert.Contains(t, out, "Invalid class.")
	assert.Contains(t, out, "No saved characters found.")
}

func TestRun_EndOfInputIsCleanExit(t *testing.T) {
	repo := newTestRepo(t)

	out := runScript(t, repo, "1", "Bob", "Warrior")
	assert.Contains(t, out, "Created Bob the Warrior!")

	names, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, names)
}

func TestExplore_EndOfInputStopsBattle(t *testing.T) {
	repo := newTestRepo(t)

	out := runScript(t, repo, "1", "Bob", "Warrior", "4")
	assert.Contains(t, out, "-- Turn 1 --")
	assert.NotContains(t, out, "attacks", "no turn is played after input ends")
	assert.NotContains(t, out, "escape")

	c, err := repo.Load(context.Background(), "Bob")
	require.NoError(t, err)
	assert.Equal(t, c.MaxHealth(), c.Health())
}
