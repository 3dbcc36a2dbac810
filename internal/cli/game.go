package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/udisondev/questchronicles/internal/game/combat"
	"github.com/udisondev/questchronicles/internal/game/session"
	"github.com/udisondev/questchronicles/internal/model"
)

func (a *App) gameLoop(ctx context.Context, s *session.Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.Character().IsDead() {
			revived, err := a.handleDeath(ctx, s)
			if err != nil || !revived {
				return err
			}
		}

		a.println("\nGAME MENU")
		a.println("1. View Character Stats")
		a.println("2. View Inventory")
		a.println("3. Quest Menu")
		a.println("4. Explore (Find Battles)")
		a.println("5. Shop")
		a.println("6. Save and Quit")

		choice, err := a.choose("Choose (1-6): ", 6)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = a.showStats(s)
		case 2:
			err = a.inventoryMenu(s)
		case 3:
			err = a.questMenu(s)
		case 4:
			err = a.explore(ctx, s)
		case 5:
			err = a.shopMenu(s)
		case 6:
			if err := s.Save(ctx); err != nil {
				a.printf("Could not save: %v\n", err)
				continue
			}
			a.println("Saved. Quitting to main menu.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) showStats(s *session.Session) error {
	c := s.Character()
	a.printf("\n=== %s ===\n", c.Name())
	a.printf("Class: %s   Level: %d\n", c.Class(), c.Level())
	a.printf("Health: %d/%d\n", c.Health(), c.MaxHealth())
	a.printf("Strength: %d   Magic: %d\n", c.Strength(), c.Magic())
	a.printf("Experience: %d/%d\n", c.Experience(), model.ExperienceForNextLevel(c.Level()))
	a.printf("Gold: %d\n", c.Gold())
	a.printf("Weapon: %s\n", orNone(c.Equipped(model.SlotWeapon)))
	a.printf("Armor: %s\n", orNone(c.Equipped(model.SlotArmor)))

	a.println("\nActive quests:")
	a.printQuestTitles(s.Quests().Active(c))
	a.println("\nCompleted quests:")
	a.printQuestTitles(s.Quests().Completed(c))

	return a.pause()
}

func (a *App) explore(ctx context.Context, s *session.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	chooser := &battlePrompt{app: a, cancel: cancel}

	enc, err := s.Explore(ctx, chooser)
	if chooser.eof {
		return io.EOF
	}
	if errors.Is(err, model.ErrCharacterDead) {
		a.println("You cannot explore while dead.")
		return nil
	}
	if err != nil {
		return err
	}

	switch enc.Result.Outcome {
	case combat.StatePlayerWon:
		a.printf("You defeated the %s! Gained %d XP and %d gold.\n", enc.Enemy.Name(), enc.Result.XPGained, enc.Result.GoldGained)
		if enc.Result.LevelsGained > 0 {
			a.printf("Level up! You are now level %d.\n", s.Character().Level())
		}
	case combat.StateEscaped:
		a.println("You escaped the battle.")
	case combat.StateEnemyWon:
		a.printf("You were defeated by the %s.\n", enc.Enemy.Name())
	}
	return nil
}

// handleDeath offers a paid revive. Declining, or being unable to pay,
// ends the game; the fallen character is saved as is.
func (a *App) handleDeath(ctx context.Context, s *session.Session) (bool, error) {
	c := s.Character()
	a.println("\n=== You have fallen ===")
	a.printf("Name: %s  Level: %d\n", c.Name(), c.Level())
	a.printf("Revive for %d gold? (y/n)\n", s.ReviveCost())

	answer, err := a.prompt("Choice: ")
	if err != nil {
		return false, err
	}

	if strings.EqualFold(answer, "y") {
		_, err := s.ReviveForGold()
		if err == nil {
			a.println("You have been revived with 50% health.")
			return true, nil
		}
		if errors.Is(err, model.ErrInsufficientResources) {
			a.println("Not enough gold to revive. Game over.")
		} else {
			a.printf("Could not revive: %v\n", err)
		}
	} else {
		a.println("You chose not to revive. Game over.")
	}

	if err := s.Save(ctx); err != nil {
		a.printf("Could not save: %v\n", err)
	}
	return false, nil
}

// battlePrompt asks the player for an action every turn. When input ends
// it cancels the battle so no more turns are played.
type battlePrompt struct {
	app    *App
	cancel context.CancelFunc
	eof    bool
}

func (p *battlePrompt) ChooseAction(b *combat.Battle) combat.Action {
	if p.eof {
		return combat.ActionEscape
	}

	c, e := b.Character(), b.Enemy()
	special := "Special"
	if ability, ok := combat.AbilityFor(c.Class()); ok {
		special = ability.Name()
	}

	p.app.printf("\n-- Turn %d --  %s: %d/%d HP   %s: %d/%d HP\n",
		b.Turn()+1, c.Name(), c.Health(), c.MaxHealth(), e.Name(), e.Health(), e.MaxHealth())
	p.app.printf("1. Attack\n2. %s\n3. Escape\n", special)

	choice, err := p.app.choose("Action (1-3): ", 3)
	if err != nil {
		p.eof = true
		p.cancel()
		return combat.ActionEscape
	}
	return []combat.Action{combat.ActionAttack, combat.ActionSpecial, combat.ActionEscape}[choice-1]
}

func (a *App) showEvent(ev combat.Event) {
	switch {
	case ev.Action == combat.ActionEscape && ev.Escaped:
		a.printf("%s escapes!\n", ev.Actor)
	case ev.Action == combat.ActionEscape:
		a.printf("%s tries to escape but fails.\n", ev.Actor)
	case ev.Healed > 0 || (ev.Ability != "" && ev.Damage == 0):
		a.printf("%s uses %s and restores %d HP.\n", ev.Actor, ev.Ability, ev.Healed)
	case ev.Ability != "":
		crit := ""
		if ev.Critical {
			crit = " Critical hit!"
		}
		a.printf("%s uses %s on %s for %d damage.%s\n", ev.Actor, ev.Ability, ev.Target, ev.Damage, crit)
	default:
		a.printf("%s attacks %s for %d damage.\n", ev.Actor, ev.Target, ev.Damage)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
