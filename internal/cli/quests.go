package cli

import (
	"errors"

	"github.com/udisondev/questchronicles/internal/data"
	"github.com/udisondev/questchronicles/internal/game/quest"
	"github.com/udisondev/questchronicles/internal/game/session"
	"github.com/udisondev/questchronicles/internal/model"
)

func (a *App) questMenu(s *session.Session) error {
	c := s.Character()
	qm := s.Quests()

	for {
		a.printf("\n=== Quests (%.0f%% complete) ===\n", qm.CompletionPercentage(c))
		a.println("1. View Active Quests")
		a.println("2. View Available Quests")
		a.println("3. View Completed Quests")
		a.println("4. Accept Quest")
		a.println("5. Abandon Quest")
		a.println("6. Complete Quest")
		a.println("7. Back")

		choice, err := a.choose("Choose (1-7): ", 7)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			a.println("\nActive quests:")
			a.printQuests(qm.Active(c))
		case 2:
			a.println("\nAvailable quests:")
			a.printQuests(qm.Available(c))
		case 3:
			a.println("\nCompleted quests:")
			a.printQuests(qm.Completed(c))
			t := qm.TotalRewardsEarned(c)
			a.printf("Total rewards earned: %d XP, %d gold\n", t.XP, t.Gold)
		case 4:
			id, err := a.prompt("Enter quest_id to accept: ")
			if err != nil {
				return err
			}
			err = qm.Accept(c, id)
			switch {
			case err == nil:
				a.printf("Quest %s accepted.\n", id)
			case errors.Is(err, data.ErrQuestNotInCatalog):
				a.println("Quest not found.")
			case errors.Is(err, model.ErrQuestAlreadyCompleted):
				a.println("You already completed this quest.")
			case errors.Is(err, quest.ErrInsufficientLevel):
				a.println("Level too low for this quest.")
			case errors.Is(err, quest.ErrRequirementsNotMet):
				a.println("Complete the prerequisite quest first.")
			default:
				a.printf("Cannot accept quest: %v\n", err)
			}
			continue
		case 5:
			id, err := a.prompt("Enter quest_id to abandon: ")
			if err != nil {
				return err
			}
			if err := qm.Abandon(c, id); err != nil {
				a.println("That quest is not active.")
				continue
			}
			a.println("Quest abandoned.")
			continue
		case 6:
			id, err := a.prompt("Enter quest_id to complete: ")
			if err != nil {
				return err
			}
			done, err := qm.Complete(c, id)
			if err != nil {
				a.printf("Cannot complete quest: %v\n", err)
				continue
			}
			a.printf("Quest complete! Gained %d XP and %d gold.\n", done.XP, done.Gold)
			if done.LevelsGained > 0 {
				a.printf("Level up! You are now level %d.\n", c.Level())
			}
			continue
		case 7:
			return nil
		}

		if err := a.pause(); err != nil {
			return err
		}
	}
}

func (a *App) printQuests(quests []model.Quest) {
	if len(quests) == 0 {
		a.println("  (none)")
		return
	}
	for _, q := range quests {
		a.printf("  [%s] %s (level %d) - %d XP, %d gold\n", q.ID, q.Title, q.RequiredLevel, q.RewardXP, q.RewardGold)
		if q.Description != "" {
			a.printf("      %s\n", q.Description)
		}
		if q.HasPrerequisite() {
			a.printf("      Requires: %s\n", q.Prerequisite)
		}
	}
}

func (a *App) printQuestTitles(quests []model.Quest) {
	if len(quests) == 0 {
		a.println("  (none)")
		return
	}
	for _, q := range quests {
		a.printf("  - %s\n", q.Title)
	}
}
