package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/questchronicles/internal/model"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrSaveFileCorrupted = errors.New("save file corrupted")
	ErrUnknownBackend    = errors.New("unknown storage backend")
)

// CharacterRepository persists whole characters keyed by name.
type CharacterRepository interface {
	// Save creates or replaces the character's saved state.
	Save(ctx context.Context, c *model.Character) error
	// Load restores a validated character. Missing = ErrCharacterNotFound.
	Load(ctx context.Context, name string) (*model.Character, error)
	// List returns saved character names, sorted.
	List(ctx context.Context) ([]string, error)
	// Delete removes a save. Missing = ErrCharacterNotFound.
	Delete(ctx context.Context, name string) error
	Close() error
}

// Quest status values in the character_quests table.
const (
	questActive    = "active"
	questCompleted = "completed"
)

func checkName(name string) error {
	if err := model.ValidateName(name); err != nil {
		return fmt.Errorf("character name: %w", err)
	}
	return nil
}

// joinList and splitList encode ID lists for single-line storage.
// An empty list is stored as "" and read back as nil.
func joinList(ids []string) string {
	return strings.Join(ids, ",")
}

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
