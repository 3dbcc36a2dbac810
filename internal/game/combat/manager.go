package combat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/questchronicles/internal/model"
)

var (
	ErrBattleNotActive  = errors.New("battle is not active")
	ErrBattleInProgress = errors.New("battle is still in progress")
	ErrUnknownAction    = errors.New("unknown battle action")
	ErrBattleAborted    = errors.New("battle aborted")
)

// State is the battle state machine position.
type State uint8

const (
	StateActive State = iota
	StatePlayerWon
	StateEnemyWon
	StateEscaped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePlayerWon:
		return "player_won"
	case StateEnemyWon:
		return "enemy_won"
	case StateEscaped:
		return "escaped"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Terminal reports whether the battle is over.
func (s State) Terminal() bool {
	return s != StateActive
}

// Action is what the player does on their turn.
type Action uint8

const (
	ActionAttack Action = iota + 1
	ActionSpecial
	ActionEscape
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionSpecial:
		return "special"
	case ActionEscape:
		return "escape"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// Event describes one action taken during a battle.
type Event struct {
	Turn     int
	Actor    string
	Target   string
	Action   Action
	Ability  string // special ability name, empty otherwise
	Damage   int
	Healed   int
	Critical bool
	Escaped  bool // escape attempt succeeded
}

// Result is the outcome of a finished battle.
type Result struct {
	Outcome      State
	Turns        int
	XPGained     int
	GoldGained   int
	LevelsGained int
}

// Chooser picks the player's action for the next turn. It is the point
// where the battle waits on the player.
type Chooser interface {
	ChooseAction(b *Battle) Action
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(b *Battle) Action

func (f ChooserFunc) ChooseAction(b *Battle) Action { return f(b) }

// AlwaysAttack is a Chooser that only uses basic attacks.
var AlwaysAttack = ChooserFunc(func(*Battle) Action { return ActionAttack })

// Battle ведёт бой одного персонажа с одним противником.
//
// The battle owns both combatants for its duration; nothing else may
// mutate their health until it ends. Not safe for concurrent use.
type Battle struct {
	id        uuid.UUID
	character *model.Character
	enemy     *model.Enemy
	rng       Rand

	state    State
	turn     int
	rewarded bool
	result   Result

	// observer receives every Event (nil = none).
	observer func(Event)
}

// NewBattle validates the combatants and opens a battle in StateActive.
// A dead character cannot start a battle.
func NewBattle(character *model.Character, enemy *model.Enemy, rng Rand) (*Battle, error) {
	if err := ValidateBattle(character, enemy); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("battle requires a random source")
	}

	b := &Battle{
		id:        uuid.New(),
		character: character,
		enemy:     enemy,
		rng:       rng,
		state:     StateActive,
	}

	slog.Debug("battle started",
		"battle", b.id,
		"character", character.Name(),
		"enemy", enemy.Name())

	return b, nil
}

// SetObserver sets the callback for battle events.
func (b *Battle) SetObserver(fn func(Event)) {
	b.observer = fn
}

func (b *Battle) ID() uuid.UUID               { return b.id }
func (b *Battle) State() State                { return b.state }
func (b *Battle) Turn() int                   { return b.turn }
func (b *Battle) Character() *model.Character { return b.character }
func (b *Battle) Enemy() *model.Enemy         { return b.enemy }

// Run drives the battle to a terminal state, asking chooser for the
// player's action each turn (nil chooser = basic attacks only), then
// grants rewards and returns the result.
//
// Turn order: player action → end check → enemy attack → end check.
// A successful escape ends the battle before the enemy acts.
func (b *Battle) Run(chooser Chooser) (Result, error) {
	return b.RunContext(context.Background(), chooser)
}

// RunContext is Run that stops when ctx is done, including while chooser
// waits on the player. An aborted battle stays active, the pending action is
// dropped and no rewards are granted; the error wraps ErrBattleAborted.
func (b *Battle) RunContext(ctx context.Context, chooser Chooser) (Result, error) {
	if chooser == nil {
		chooser = AlwaysAttack
	}

	for b.CheckEnd() == StateActive {
		if err := b.aborted(ctx); err != nil {
			return Result{}, err
		}
		action := chooser.ChooseAction(b)
		if err := b.aborted(ctx); err != nil {
			return Result{}, err
		}
		if _, err := b.PlayerAction(action); err != nil {
			return Result{}, err
		}
		if b.CheckEnd().Terminal() {
			break
		}
		if _, err := b.EnemyTurn(); err != nil {
			return Result{}, err
		}
	}

	return b.Finish()
}

// PlayerAction performs the player's action for a new turn.
func (b *Battle) PlayerAction(action Action) (Event, error) {
	if b.CheckEnd().Terminal() {
		return Event{}, ErrBattleNotActive
	}

	var ability Ability
	switch action {
	case ActionAttack, ActionEscape:
	case ActionSpecial:
		a, ok := AbilityFor(b.character.Class())
		if !ok {
			return Event{}, fmt.Errorf("%w: no special ability for class %s", ErrUnknownAction, b.character.Class())
		}
		ability = a
	default:
		return Event{}, fmt.Errorf("%w: %d", ErrUnknownAction, action)
	}

	b.turn++
	ev := Event{
		Turn:   b.turn,
		Actor:  b.character.Name(),
		Target: b.enemy.Name(),
		Action: action,
	}

	switch action {
	case ActionAttack:
		ev.Damage = CalcDamage(b.character.Strength(), b.enemy.Strength())
		b.enemy.TakeDamage(ev.Damage)

	case ActionSpecial:
		out := ability.Use(b.character, b.enemy, b.rng)
		ev.Ability = ability.Name()
		ev.Damage = out.Damage
		ev.Healed = out.Healed
		ev.Critical = out.Critical

	case ActionEscape:
		// Неудачный побег просто тратит ход.
		if roll(b.rng, EscapeChance) {
			ev.Escaped = true
			b.state = StateEscaped
		}
	}

	slog.Debug("player action",
		"battle", b.id,
		"turn", b.turn,
		"action", action,
		"damage", ev.Damage,
		"healed", ev.Healed,
		"escaped", ev.Escaped,
		"enemy_hp", b.enemy.Health())

	b.emit(ev)
	return ev, nil
}

// EnemyTurn performs the enemy's basic attack on the character.
func (b *Battle) EnemyTurn() (Event, error) {
	if b.CheckEnd().Terminal() {
		return Event{}, ErrBattleNotActive
	}

	ev := Event{
		Turn:   b.turn,
		Actor:  b.enemy.Name(),
		Target: b.character.Name(),
		Action: ActionAttack,
		Damage: CalcDamage(b.enemy.Strength(), b.character.Strength()),
	}
	b.character.TakeDamage(ev.Damage)

	slog.Debug("enemy action",
		"battle", b.id,
		"turn", b.turn,
		"damage", ev.Damage,
		"character_hp", b.character.Health())

	b.emit(ev)
	return ev, nil
}

// CheckEnd evaluates the end condition and moves the battle to a terminal
// state when one side is down. The enemy is checked first.
func (b *Battle) CheckEnd() State {
	if b.state != StateActive {
		return b.state
	}
	switch {
	case b.enemy.IsDead():
		b.state = StatePlayerWon
	case b.character.IsDead():
		b.state = StateEnemyWon
	}
	return b.state
}

// Finish returns the result of a finished battle. On a win it grants the
// enemy's XP (with level-up cascade) and gold exactly once.
func (b *Battle) Finish() (Result, error) {
	state := b.CheckEnd()
	if state == StateActive {
		return Result{}, ErrBattleInProgress
	}
	if b.rewarded {
		return b.result, nil
	}

	res := Result{Outcome: state, Turns: b.turn}
	if state == StatePlayerWon {
		levels, err := RewardVictory(b.character, b.enemy)
		if err != nil {
			return Result{}, fmt.Errorf("granting battle rewards: %w", err)
		}
		res.XPGained = b.enemy.XPReward()
		res.GoldGained = b.enemy.GoldReward()
		res.LevelsGained = levels
	}

	b.rewarded = true
	b.result = res

	slog.Info("battle finished",
		"battle", b.id,
		"character", b.character.Name(),
		"enemy", b.enemy.Name(),
		"outcome", state,
		"turns", b.turn,
		"xp", res.XPGained,
		"gold", res.GoldGained)

	return res, nil
}

func (b *Battle) aborted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		slog.Debug("battle aborted", "battle", b.id, "turn", b.turn, "reason", err)
		return fmt.Errorf("%w: %w", ErrBattleAborted, err)
	}
	return nil
}

func (b *Battle) emit(ev Event) {
	if b.observer != nil {
		b.observer(ev)
	}
}
