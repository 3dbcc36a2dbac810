package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/questchronicles/internal/config"
	"github.com/udisondev/questchronicles/internal/data"
	"github.com/udisondev/questchronicles/internal/db"
	"github.com/udisondev/questchronicles/internal/game/combat"
	"github.com/udisondev/questchronicles/internal/model"
)

func newTestSession(t *testing.T, class model.Class) (*Session, *db.FileRepository) {
	t.Helper()

	c, err := model.NewCharacter("Hero", class)
	require.NoError(t, err)

	repo, err := db.NewFileRepository(t.TempDir())
	require.NoError(t, err)

	catalogs := Catalogs{
		Items: data.NewItemCatalog(
			model.Item{ID: "health_potion", Name: "Health Potion", Type: model.ItemTypeConsumable, Effect: model.Effect{Stat: model.StatHealth, Delta: 25}, Cost: 25},
			model.Item{ID: "chain_mail", Name: "Chain Mail", Type: model.ItemTypeArmor, Effect: model.Effect{Stat: model.StatMaxHealth, Delta: 30}, Cost: 200},
		),
		Quests: data.NewQuestCatalog(
			model.Quest{ID: "intro_quest", Title: "The Beginning", RewardXP: 50, RewardGold: 20, RequiredLevel: 1},
		),
	}

	return New(c, catalogs, repo, NewRand(7), config.DefaultGame().Rules), repo
}

func TestExplore(t *testing.T) {
	s, _ := newTestSession(t, model.ClassWarrior)

	var events []combat.Event
	s.SetBattleObserver(func(ev combat.Event) { events = append(events, ev) })

	enc, err := s.Explore(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Goblin", enc.Enemy.Name())
	assert.Equal(t, combat.StatePlayerWon, enc.Result.Outcome)
	assert.Equal(t, 25, s.Character().Experience())
	assert.Equal(t, model.StartingGold+10, s.Character().Gold())
	assert.Len(t, events, 7)
}

func TestExplore_Errors(t *testing.T) {
	t.Run("dead character", func(t *testing.T) {
		s, _ := newTestSession(t, model.ClassMage)
		s.Character().TakeDamage(1000)

		_, err := s.Explore(context.Background(), nil)
		assert.ErrorIs(t, err, model.ErrCharacterDead)
	})

	t.Run("canceled context", func(t *testing.T) {
		s, _ := newTestSession(t, model.ClassMage)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Explore(ctx, nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, s.Character().MaxHealth(), s.Character().Health())
	})
}

func TestReviveForGold(t *testing.T) {
	t.Run("pays and revives at half health", func(t *testing.T) {
		s, _ := newTestSession(t, model.ClassWarrior)
		c := s.Character()
		c.TakeDamage(c.MaxHealth())

		assert.Equal(t, 20, s.ReviveCost())
		paid, err := s.ReviveForGold()
		require.NoError(t, err)
		assert.Equal(t, 20, paid)
		assert.Equal(t, 60, c.Health())
		assert.Equal(t, model.StartingGold-20, c.Gold())
	})

	t.Run("not enough gold", func(t *testing.T) {
		s, _ := newTestSession(t, model.ClassWarrior)
		c := s.Character()
		_, err := c.AddGold(-95)
		require.NoError(t, err)
		c.TakeDamage(c.MaxHealth())

		_, err = s.ReviveForGold()
		assert.ErrorIs(t, err, model.ErrInsufficientResources)
		assert.True(t, c.IsDead())
		assert.Equal(t, 5, c.Gold())
	})

	t.Run("alive", func(t *testing.T) {
		s, _ := newTestSession(t, model.ClassWarrior)
		_, err := s.ReviveForGold()
		assert.ErrorIs(t, err, ErrCharacterAlive)
	})

	t.Run("minimum cost", func(t *testing.T) {
		s, _ := newTestSession(t, model.ClassWarrior)
		s.rules.MinReviveCost = 50
		assert.Equal(t, 50, s.ReviveCost())
	})
}

func TestBuySell(t *testing.T) {
	s, _ := newTestSession(t, model.ClassCleric)

	item, err := s.Buy("health_potion")
	require.NoError(t, err)
	assert.Equal(t, "Health Potion", item.Name)
	assert.Equal(t, model.StartingGold-25, s.Character().Gold())

	_, err = s.Buy("chain_mail")
	assert.ErrorIs(t, err, model.ErrInsufficientResources)

	_, err = s.Buy("excalibur")
	assert.ErrorIs(t, err, data.ErrItemNotInCatalog)

	got, err := s.Sell("health_potion")
	require.NoError(t, err)
	assert.Equal(t, 12, got)
	assert.Empty(t, s.Character().Inventory())
}

func TestSave(t *testing.T) {
	s, repo := newTestSession(t, model.ClassRogue)
	ctx := context.Background()

	require.NoError(t, s.Quests().Accept(s.Character(), "intro_quest"))
	require.NoError(t, s.Save(ctx))

	loaded, err := repo.Load(ctx, "Hero")
	require.NoError(t, err)
	assert.Equal(t, s.Character().Record(), loaded.Record())
}
