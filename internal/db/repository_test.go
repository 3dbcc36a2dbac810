package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/questchronicles/internal/model"
)

// newSampleCharacter builds a mid-game character touching every saved field.
func newSampleCharacter(t *testing.T, name string) *model.Character {
	t.Helper()
	c, err := model.NewCharacter(name, model.ClassMage)
	require.NoError(t, err)

	_, err = c.GainExperience(350)
	require.NoError(t, err)
	_, err = c.AddGold(55)
	require.NoError(t, err)
	c.TakeDamage(17)

	for _, id := range []string{"health_potion", "oak_staff", "health_potion", "leather_armor"} {
		require.NoError(t, c.AddItem(id))
	}
	require.NoError(t, c.MoveToSlot(model.SlotWeapon, "oak_staff"))

	require.NoError(t, c.StartQuest("intro_quest"))
	require.NoError(t, c.FinishQuest("intro_quest"))
	require.NoError(t, c.StartQuest("goblin_menace"))
	require.NoError(t, c.StartQuest("herb_gathering"))
	return c
}

// testRepositoryContract runs the behavior every backend must share.
func testRepositoryContract(t *testing.T, repo CharacterRepository) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		c := newSampleCharacter(t, "Aria")
		require.NoError(t, repo.Save(ctx, c))

		loaded, err := repo.Load(ctx, "Aria")
		require.NoError(t, err)
		assert.Equal(t, c.Record(), loaded.Record())
	})

	t.Run("fresh character round trip", func(t *testing.T) {
		c, err := model.NewCharacter("Brom", model.ClassWarrior)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))

		loaded, err := repo.Load(ctx, "Brom")
		require.NoError(t, err)
		assert.Equal(t, c.Record(), loaded.Record())
	})

	t.Run("save overwrites", func(t *testing.T) {
		c := newSampleCharacter(t, "Cade")
		require.NoError(t, repo.Save(ctx, c))

		require.NoError(t, c.RemoveItem("health_potion"))
		require.NoError(t, c.FinishQuest("goblin_menace"))
		_, err := c.AddGold(-10)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))

		loaded, err := repo.Load(ctx, "Cade")
		require.NoError(t, err)
		assert.Equal(t, c.Record(), loaded.Record())
	})

	t.Run("list and delete", func(t *testing.T) {
		names, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Aria", "Brom", "Cade"}, names)

		require.NoError(t, repo.Delete(ctx, "Brom"))
		_, err = repo.Load(ctx, "Brom")
		assert.ErrorIs(t, err, ErrCharacterNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "Brom"), ErrCharacterNotFound)

		names, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Aria", "Cade"}, names)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.Load(ctx, "Nobody")
		assert.ErrorIs(t, err, ErrCharacterNotFound)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := repo.Load(ctx, "../etc/passwd")
		assert.ErrorIs(t, err, model.ErrInvalidName)
	})
}
