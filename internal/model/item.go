package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Stat identifies a character attribute an item effect can modify.
type Stat uint8

const (
	StatHealth Stat = iota + 1
	StatMaxHealth
	StatStrength
	StatMagic
)

// String returns the stat name used in effect strings.
func (s Stat) String() string {
	switch s {
	case StatHealth:
		return "health"
	case StatMaxHealth:
		return "max_health"
	case StatStrength:
		return "strength"
	case StatMagic:
		return "magic"
	default:
		return "unknown"
	}
}

// ParseStat converts an effect stat name to Stat.
func ParseStat(name string) (Stat, error) {
	switch strings.TrimSpace(name) {
	case "health":
		return StatHealth, nil
	case "max_health":
		return StatMaxHealth, nil
	case "strength":
		return StatStrength, nil
	case "magic":
		return StatMagic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStat, name)
	}
}

// Effect is a flat stat modifier carried by an item ("strength:5").
type Effect struct {
	Stat  Stat
	Delta int
}

// ParseEffect decodes "stat:delta".
func ParseEffect(raw string) (Effect, error) {
	statName, value, ok := strings.Cut(raw, ":")
	if !ok || strings.Contains(value, ":") {
		return Effect{}, fmt.Errorf("%w: %q", ErrInvalidEffectFormat, raw)
	}

	delta, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return Effect{}, fmt.Errorf("%w: %q: delta is not a number", ErrInvalidEffectFormat, raw)
	}

	stat, err := ParseStat(statName)
	if err != nil {
		return Effect{}, err
	}

	return Effect{Stat: stat, Delta: delta}, nil
}

// Reverse returns the effect that undoes e.
func (e Effect) Reverse() Effect {
	return Effect{Stat: e.Stat, Delta: -e.Delta}
}

// String encodes the effect back to "stat:delta".
func (e Effect) String() string {
	return e.Stat.String() + ":" + strconv.Itoa(e.Delta)
}

// ItemType определяет категорию предмета.
type ItemType uint8

const (
	ItemTypeWeapon ItemType = iota + 1
	ItemTypeArmor
	ItemTypeConsumable
)

// String returns the item type name used in data files.
func (t ItemType) String() string {
	switch t {
	case ItemTypeWeapon:
		return "weapon"
	case ItemTypeArmor:
		return "armor"
	case ItemTypeConsumable:
		return "consumable"
	default:
		return "unknown"
	}
}

// ParseItemType converts a data file type name to ItemType.
func ParseItemType(name string) (ItemType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "weapon":
		return ItemTypeWeapon, nil
	case "armor":
		return ItemTypeArmor, nil
	case "consumable":
		return ItemTypeConsumable, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidItemType, name)
	}
}

// Slot is an equipment slot on a character.
type Slot uint8

const (
	SlotWeapon Slot = iota + 1
	SlotArmor
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotArmor:
		return "armor"
	default:
		return "unknown"
	}
}

// ItemType returns the item type that fits the slot.
func (s Slot) ItemType() ItemType {
	switch s {
	case SlotWeapon:
		return ItemTypeWeapon
	case SlotArmor:
		return ItemTypeArmor
	default:
		return 0
	}
}

// Item описывает предмет из каталога. Не изменяется после загрузки.
type Item struct {
	ID          string
	Name        string
	Type        ItemType
	Effect      Effect
	Cost        int
	Description string
}

// Validate checks that the item's effect suits its type. Health is clamped
// to max health, so a health bonus cannot be reversed exactly on unequip:
// only consumables may carry one.
func (i Item) Validate() error {
	if i.Type != ItemTypeConsumable && i.Effect.Stat == StatHealth {
		return fmt.Errorf("%w: %s %q cannot carry a %s effect", ErrInvalidEffectFormat, i.Type, i.ID, i.Effect.Stat)
	}
	return nil
}

// ValidateID checks an item or quest ID. Saves store IDs in
// comma-separated lists, so reserved characters are rejected.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if strings.ContainsAny(id, ",:\r\n") {
		return fmt.Errorf("%w: %q contains reserved characters", ErrInvalidID, id)
	}
	return nil
}
