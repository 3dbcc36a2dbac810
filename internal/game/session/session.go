// Package session ties one player's character to the catalogs, rules and
// storage used while playing.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/questchronicles/internal/config"
	"github.com/udisondev/questchronicles/internal/data"
	"github.com/udisondev/questchronicles/internal/db"
	"github.com/udisondev/questchronicles/internal/game/combat"
	"github.com/udisondev/questchronicles/internal/game/encounter"
	"github.com/udisondev/questchronicles/internal/game/equipment"
	"github.com/udisondev/questchronicles/internal/game/quest"
	"github.com/udisondev/questchronicles/internal/game/shop"
	"github.com/udisondev/questchronicles/internal/model"
)

// ErrCharacterAlive is returned when reviving a living character.
var ErrCharacterAlive = errors.New("character is alive")

// Catalogs are the read-only game definitions loaded at startup.
type Catalogs struct {
	Items  *data.ItemCatalog
	Quests *data.QuestCatalog
}

// Encounter is the outcome of one exploration.
type Encounter struct {
	Enemy  *model.Enemy
	Result combat.Result
}

// Session связывает текущего персонажа со всем, что нужно для игры им.
// One session per character; not safe for concurrent use.
type Session struct {
	id        uuid.UUID
	character *model.Character
	catalogs  Catalogs
	repo      db.CharacterRepository
	rng       combat.Rand
	rules     config.Rules

	equipment *equipment.Manager
	quests    *quest.Manager

	// observer receives battle events (nil = none).
	observer func(combat.Event)
}

// New creates a session for c.
func New(c *model.Character, catalogs Catalogs, repo db.CharacterRepository, rng combat.Rand, rules config.Rules) *Session {
	s := &Session{
		id:        uuid.New(),
		character: c,
		catalogs:  catalogs,
		repo:      repo,
		rng:       rng,
		rules:     rules,
		equipment: equipment.NewManager(catalogs.Items),
		quests:    quest.NewManager(catalogs.Quests),
	}
	slog.Info("session started", "session", s.id, "character", c.Name(), "class", c.Class(), "level", c.Level())
	return s
}

// NewRand returns the game RNG. Seed 0 seeds from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *Session) ID() uuid.UUID                 { return s.id }
func (s *Session) Character() *model.Character   { return s.character }
func (s *Session) Items() *data.ItemCatalog      { return s.catalogs.Items }
func (s *Session) Equipment() *equipment.Manager { return s.equipment }
func (s *Session) Quests() *quest.Manager        { return s.quests }

// SetBattleObserver sets the callback attached to every battle of the session.
func (s *Session) SetBattleObserver(fn func(combat.Event)) {
	s.observer = fn
}

// Explore picks an enemy for the character's level and fights it to the
// end, asking chooser for each player action (nil = basic attacks).
// Cancelling ctx abandons the battle without rewards.
func (s *Session) Explore(ctx context.Context, chooser combat.Chooser) (Encounter, error) {
	if err := ctx.Err(); err != nil {
		return Encounter{}, err
	}

	enemy, err := encounter.For(s.character)
	if err != nil {
		return Encounter{}, err
	}
	battle, err := combat.NewBattle(s.character, enemy, s.rng)
	if err != nil {
		return Encounter{}, err
	}
	battle.SetObserver(s.observer)

	res, err := battle.RunContext(ctx, chooser)
	if err != nil {
		return Encounter{}, fmt.Errorf("battle with %s: %w", enemy.Name(), err)
	}
	return Encounter{Enemy: enemy, Result: res}, nil
}

// ReviveCost returns the gold needed to revive:
// max(min_revive_cost, level * revive_cost_per_level).
func (s *Session) ReviveCost() int {
	return max(s.rules.MinReviveCost, s.character.Level()*s.rules.ReviveCostPerLevel)
}

// ReviveForGold pays ReviveCost and revives the character at half health.
// Returns the gold paid.
func (s *Session) ReviveForGold() (int, error) {
	if !s.character.IsDead() {
		return 0, ErrCharacterAlive
	}
	cost := s.ReviveCost()
	if s.character.Gold() < cost {
		return 0, fmt.Errorf("%w: revive costs %d, have %d gold", model.ErrInsufficientResources, cost, s.character.Gold())
	}
	if _, err := s.character.AddGold(-cost); err != nil {
		return 0, err
	}
	s.character.Revive()

	slog.Info("character revived", "session", s.id, "character", s.character.Name(), "cost", cost)
	return cost, nil
}

// Buy purchases one copy of itemID from the shop.
func (s *Session) Buy(itemID string) (model.Item, error) {
	item, err := s.catalogs.Items.Item(itemID)
	if err != nil {
		return model.Item{}, err
	}
	if _, err := shop.Purchase(s.character, item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// Sell sells one copy of itemID and returns the gold received.
func (s *Session) Sell(itemID string) (int, error) {
	item, err := s.catalogs.Items.Item(itemID)
	if err != nil {
		return 0, err
	}
	before := s.character.Gold()
	after, err := shop.Sell(s.character, item)
	if err != nil {
		return 0, err
	}
	return after - before, nil
}

// Save persists the character.
func (s *Session) Save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.character); err != nil {
		return fmt.Errorf("saving %s: %w", s.character.Name(), err)
	}
	slog.Info("game saved", "session", s.id, "character", s.character.Name())
	return nil
}
