// Package cli is the text-menu front end of the game.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/udisondev/questchronicles/internal/config"
	"github.com/udisondev/questchronicles/internal/db"
	"github.com/udisondev/questchronicles/internal/game/combat"
	"github.com/udisondev/questchronicles/internal/game/session"
	"github.com/udisondev/questchronicles/internal/model"
)

// App reads menu choices from in and writes all player-facing text to out.
type App struct {
	in  *bufio.Scanner
	out io.Writer

	repo     db.CharacterRepository
	catalogs session.Catalogs
	rng      combat.Rand
	rules    config.Rules
}

// New creates the CLI.
func New(in io.Reader, out io.Writer, repo db.CharacterRepository, catalogs session.Catalogs, rng combat.Rand, rules config.Rules) *App {
	return &App{
		in:       bufio.NewScanner(in),
		out:      out,
		repo:     repo,
		catalogs: catalogs,
		rng:      rng,
		rules:    rules,
	}
}

// Run shows the main menu until the player exits, input ends or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.banner()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.println("\nMAIN MENU")
		a.println("1. New Game")
		a.println("2. Load Game")
		a.println("3. Delete Character")
		a.println("4. Exit")

		choice, err := a.choose("Choose (1-4): ", 4)
		if err != nil {
			return a.endOfInput(err)
		}

		switch choice {
		case 1:
			err = a.newGame(ctx)
		case 2:
			err = a.loadGame(ctx)
		case 3:
			err = a.deleteCharacter(ctx)
		case 4:
			a.println("Thanks for playing Quest Chronicles!")
			return nil
		}
		if err != nil {
			return a.endOfInput(err)
		}
	}
}

func (a *App) banner() {
	line := strings.Repeat("=", 50)
	a.println(line)
	a.println("     QUEST CHRONICLES - A MODULAR RPG ADVENTURE")
	a.println(line)
	a.println("\nWelcome to Quest Chronicles!")
	a.println("Build your character, complete quests, and become a legend!")
}

func (a *App) newGame(ctx context.Context) error {
	a.println("\n--- New Game ---")
	name, err := a.prompt("Enter character name: ")
	if err != nil {
		return err
	}
	if err := model.ValidateName(name); err != nil {
		a.printf("Invalid name: %v\n", err)
		return nil
	}
	name = strings.TrimSpace(name)

	names, err := a.repo.List(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(names, name) {
		answer, err := a.prompt(fmt.Sprintf("A save for %s already exists. Overwrite it? (y/n): ", name))
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			a.println("Cancelled.")
			return nil
		}
	}

	a.println("Choose a class: Warrior, Mage, Rogue, Cleric")
	className, err := a.prompt("Class: ")
	if err != nil {
		return err
	}
	class, err := model.ParseClass(className)
	if err != nil {
		a.println("Invalid class.")
		return nil
	}

	c, err := model.NewCharacter(name, class)
	if err != nil {
		a.printf("Could not create character: %v\n", err)
		return nil
	}
	a.printf("Created %s the %s!\n", c.Name(), c.Class())

	s := a.newSession(c)
	if err := s.Save(ctx); err != nil {
		a.printf("Warning: could not save new character: %v\n", err)
	}
	return a.gameLoop(ctx, s)
}

func (a *App) loadGame(ctx context.Context) error {
	a.println("\n--- Load Game ---")
	name, ok, err := a.pickSave(ctx)
	if err != nil || !ok {
		return err
	}

	c, err := a.repo.Load(ctx, name)
	switch {
	case errors.Is(err, db.ErrCharacterNotFound):
		a.println("Save file not found.")
		return nil
	case errors.Is(err, db.ErrSaveFileCorrupted), errors.Is(err, model.ErrInvalidSaveData):
		a.printf("Save file is damaged: %v\n", err)
		return nil
	case err != nil:
		return err
	}

	a.printf("Loaded %s (level %d %s).\n", c.Name(), c.Level(), c.Class())
	return a.gameLoop(ctx, a.newSession(c))
}

func (a *App) deleteCharacter(ctx context.Context) error {
	a.println("\n--- Delete Character ---")
	name, ok, err := a.pickSave(ctx)
	if err != nil || !ok {
		return err
	}

	answer, err := a.prompt(fmt.Sprintf("Delete %s permanently? (y/n): ", name))
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		a.println("Cancelled.")
		return nil
	}
	if err := a.repo.Delete(ctx, name); err != nil {
		a.printf("Could not delete: %v\n", err)
		return nil
	}
	a.printf("%s deleted.\n", name)
	return nil
}

// pickSave lists saved characters and lets the player choose one.
func (a *App) pickSave(ctx context.Context) (string, bool, error) {
	names, err := a.repo.List(ctx)
	if err != nil {
		return "", false, err
	}
	if len(names) == 0 {
		a.println("No saved characters found.")
		return "", false, nil
	}
	for i, n := range names {
		a.printf("%d. %s\n", i+1, n)
	}

	answer, err := a.prompt(fmt.Sprintf("Select (1-%d) or 'c' to cancel: ", len(names)))
	if err != nil {
		return "", false, err
	}
	if strings.EqualFold(answer, "c") {
		return "", false, nil
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(names) {
		a.println("Invalid selection.")
		return "", false, nil
	}
	return names[idx-1], true, nil
}

func (a *App) newSession(c *model.Character) *session.Session {
	s := session.New(c, a.catalogs, a.repo, a.rng, a.rules)
	s.SetBattleObserver(a.showEvent)
	return s
}

// prompt prints label and reads one trimmed line. Returns io.EOF when input ends.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}

// choose reads a menu number in 1..n, re-asking on bad input.
func (a *App) choose(label string, n int) (int, error) {
	for {
		answer, err := a.prompt(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(answer)
		if err == nil && v >= 1 && v <= n {
			return v, nil
		}
		a.printf("Invalid choice. Enter a number from 1 to %d.\n", n)
	}
}

func (a *App) pause() error {
	_, err := a.prompt("\nPress Enter to continue.")
	return err
}

// endOfInput treats running out of input as a normal exit.
func (a *App) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		slog.Debug("input closed, exiting")
		a.println("")
		return nil
	}
	return err
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
