package model

import (
	"fmt"
	"slices"
)

// CharacterRecord is the flat, storage-facing shape of a Character.
// Repositories read and write records; Restore turns one back into a
// validated Character.
type CharacterRecord struct {
	Name            string
	Class           Class
	Level           int
	Health          int
	MaxHealth       int
	Strength        int
	Magic           int
	Experience      int
	Gold            int
	Inventory       []string
	EquippedWeapon  string
	EquippedArmor   string
	ActiveQuests    []string
	CompletedQuests []string
}

// Record returns a snapshot of c. Slices are copies.
func (c *Character) Record() CharacterRecord {
	return CharacterRecord{
		Name:            c.name,
		Class:           c.class,
		Level:           c.level,
		Health:          c.health,
		MaxHealth:       c.maxHealth,
		Strength:        c.strength,
		Magic:           c.magic,
		Experience:      c.experience,
		Gold:            c.gold,
		Inventory:       slices.Clone(c.inventory),
		EquippedWeapon:  c.equippedWeapon,
		EquippedArmor:   c.equippedArmor,
		ActiveQuests:    slices.Clone(c.activeQuests),
		CompletedQuests: slices.Clone(c.completedQuests),
	}
}

// Restore validates rec and builds a Character from it.
// Every violation is reported as ErrInvalidSaveData.
func Restore(rec CharacterRecord) (*Character, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &Character{
		name:            rec.Name,
		class:           rec.Class,
		level:           rec.Level,
		health:          rec.Health,
		maxHealth:       rec.MaxHealth,
		strength:        rec.Strength,
		magic:           rec.Magic,
		experience:      rec.Experience,
		gold:            rec.Gold,
		inventory:       slices.Clone(rec.Inventory),
		equippedWeapon:  rec.EquippedWeapon,
		equippedArmor:   rec.EquippedArmor,
		activeQuests:    slices.Clone(rec.ActiveQuests),
		completedQuests: slices.Clone(rec.CompletedQuests),
	}, nil
}

// Validate checks the invariants a Character must hold.
func (rec CharacterRecord) Validate() error {
	if err := ValidateName(rec.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSaveData, err)
	}
	if !rec.Class.Valid() {
		return fmt.Errorf("%w: unknown class %d", ErrInvalidSaveData, rec.Class)
	}
	if rec.Level < StartingLevel {
		return fmt.Errorf("%w: level %d", ErrInvalidSaveData, rec.Level)
	}
	if rec.MaxHealth < 1 || rec.Health < 0 || rec.Health > rec.MaxHealth {
		return fmt.Errorf("%w: health %d/%d", ErrInvalidSaveData, rec.Health, rec.MaxHealth)
	}
	if rec.Strength < 0 || rec.Magic < 0 {
		return fmt.Errorf("%w: negative strength or magic", ErrInvalidSaveData)
	}
	if rec.Experience < 0 {
		return fmt.Errorf("%w: experience %d", ErrInvalidSaveData, rec.Experience)
	}
	if rec.Gold < 0 {
		return fmt.Errorf("%w: gold %d", ErrInvalidSaveData, rec.Gold)
	}
	if len(rec.Inventory) > InventoryCapacity {
		return fmt.Errorf("%w: %d items exceed capacity %d", ErrInvalidSaveData, len(rec.Inventory), InventoryCapacity)
	}

	seen := make(map[string]bool, len(rec.ActiveQuests))
	for _, id := range rec.ActiveQuests {
		if seen[id] {
			return fmt.Errorf("%w: quest %q listed twice", ErrInvalidSaveData, id)
		}
		seen[id] = true
	}
	done := make(map[string]bool, len(rec.CompletedQuests))
	for _, id := range rec.CompletedQuests {
		if seen[id] {
			return fmt.Errorf("%w: quest %q both active and completed", ErrInvalidSaveData, id)
		}
		if done[id] {
			return fmt.Errorf("%w: quest %q listed twice", ErrInvalidSaveData, id)
		}
		done[id] = true
	}

	return nil
}
