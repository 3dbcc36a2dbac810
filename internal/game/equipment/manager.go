// Package equipment applies item stat effects to characters: equipping and
// unequipping weapons and armor, and consuming items from the inventory.
package equipment

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/questchronicles/internal/model"
)

// ItemLookup resolves item definitions by ID.
// *data.ItemCatalog satisfies it.
type ItemLookup interface {
	Item(id string) (model.Item, error)
}

// Manager resolves equipment changes against an item catalog.
// The catalog is read-only; Manager holds no per-character state.
type Manager struct {
	items ItemLookup
}

// NewManager creates a Manager over items.
func NewManager(items ItemLookup) *Manager {
	return &Manager{items: items}
}

// Equip moves itemID from the inventory into slot and applies its effect.
//
// If the slot is occupied the previous item's effect is reversed and the
// item goes back to the inventory first; with a full inventory the call
// fails with ErrInventoryFull and the previous item stays equipped.
// Equipment with a health effect fails with ErrInvalidEffectFormat.
// On any error the character is left unchanged.
// Returns the ID of the item that was swapped out ("" if the slot was empty).
func (m *Manager) Equip(c *model.Character, slot model.Slot, itemID string) (string, error) {
	if !c.HasItem(itemID) {
		return "", fmt.Errorf("equip %q: %w", itemID, model.ErrItemNotFound)
	}
	item, err := m.items.Item(itemID)
	if err != nil {
		return "", fmt.Errorf("equip %q: %w", itemID, err)
	}
	if item.Type != slot.ItemType() {
		return "", fmt.Errorf("equip %q (%s) into %s slot: %w", itemID, item.Type, slot, model.ErrItemTypeMismatch)
	}
	if err := item.Validate(); err != nil {
		return "", fmt.Errorf("equip %q: %w", itemID, err)
	}

	prevID := c.Equipped(slot)
	health := c.Health()
	if prevID != "" {
		if c.InventorySpace() == 0 {
			return "", fmt.Errorf("swapping out %q: %w", prevID, model.ErrInventoryFull)
		}
		if _, err := m.Unequip(c, slot); err != nil {
			return "", err
		}
	}

	if err := c.CanApply(item.Effect); err != nil {
		m.restore(c, slot, prevID, health)
		return "", fmt.Errorf("equip %q: %w", itemID, err)
	}
	if err := c.MoveToSlot(slot, itemID); err != nil {
		m.restore(c, slot, prevID, health)
		return "", fmt.Errorf("equip %q: %w", itemID, err)
	}
	// CanApply прошёл, значит эффект применится без ошибки.
	_ = c.ApplyStatEffect(item.Effect)

	slog.Debug("item equipped",
		"character", c.Name(),
		"slot", slot,
		"item", itemID,
		"replaced", prevID)

	return prevID, nil
}

// Unequip reverses the effect of the item in slot and returns it to the
// inventory. An empty slot is a no-op returning "".
// Fails with ErrInventoryFull, leaving the item equipped, if the bag has no room.
func (m *Manager) Unequip(c *model.Character, slot model.Slot) (string, error) {
	itemID := c.Equipped(slot)
	if itemID == "" {
		return "", nil
	}
	if c.InventorySpace() == 0 {
		return "", fmt.Errorf("unequip %q: %w", itemID, model.ErrInventoryFull)
	}

	item, err := m.items.Item(itemID)
	if err != nil {
		return "", fmt.Errorf("unequip %q: %w", itemID, err)
	}

	reverse := item.Effect.Reverse()
	if err := c.ApplyStatEffect(reverse); err != nil {
		return "", fmt.Errorf("unequip %q: %w", itemID, err)
	}
	if _, err := c.MoveFromSlot(slot); err != nil {
		_ = c.ApplyStatEffect(item.Effect)
		return "", fmt.Errorf("unequip %q: %w", itemID, err)
	}

	slog.Debug("item unequipped",
		"character", c.Name(),
		"slot", slot,
		"item", itemID)

	return itemID, nil
}

// UseItem consumes one copy of a consumable from the inventory and applies
// its effect. Returns the consumed item definition.
func (m *Manager) UseItem(c *model.Character, itemID string) (model.Item, error) {
	if !c.HasItem(itemID) {
		return model.Item{}, fmt.Errorf("use %q: %w", itemID, model.ErrItemNotFound)
	}
	if c.IsDead() {
		return model.Item{}, fmt.Errorf("use %q: %w", itemID, model.ErrCharacterDead)
	}
	item, err := m.items.Item(itemID)
	if err != nil {
		return model.Item{}, fmt.Errorf("use %q: %w", itemID, err)
	}
	if item.Type != model.ItemTypeConsumable {
		return model.Item{}, fmt.Errorf("use %q (%s): %w", itemID, item.Type, model.ErrItemTypeMismatch)
	}
	if err := c.CanApply(item.Effect); err != nil {
		return model.Item{}, fmt.Errorf("use %q: %w", itemID, err)
	}

	if err := c.RemoveItem(itemID); err != nil {
		return model.Item{}, err
	}
	_ = c.ApplyStatEffect(item.Effect)

	slog.Debug("item used",
		"character", c.Name(),
		"item", itemID,
		"effect", item.Effect)

	return item, nil
}

// ItemIn returns the definition of the item equipped in slot.
func (m *Manager) ItemIn(c *model.Character, slot model.Slot) (model.Item, bool, error) {
	itemID := c.Equipped(slot)
	if itemID == "" {
		return model.Item{}, false, nil
	}
	item, err := m.items.Item(itemID)
	if err != nil {
		return model.Item{}, false, err
	}
	return item, true, nil
}

// restore re-equips prevID after a failed swap and gives back health the
// unequip clamped away. The bag had room for it a moment ago, so only a
// broken catalog can make this fail.
func (m *Manager) restore(c *model.Character, slot model.Slot, prevID string, health int) {
	if prevID == "" {
		return
	}
	defer func() {
		if lost := health - c.Health(); lost > 0 {
			c.Heal(lost)
		}
	}()
	item, err := m.items.Item(prevID)
	if err == nil {
		err = c.MoveToSlot(slot, prevID)
	}
	if err == nil {
		err = c.ApplyStatEffect(item.Effect)
	}
	if err != nil && !errors.Is(err, model.ErrSlotOccupied) {
		slog.Error("failed to restore equipment after aborted swap",
			"character", c.Name(),
			"slot", slot,
			"item", prevID,
			"error", err)
	}
}
