package model

import (
	"fmt"
	"slices"
)

// InventoryCapacity is the number of bag slots a character has.
const InventoryCapacity = 20

// Inventory returns a copy of the bag in insertion order.
func (c *Character) Inventory() []string {
	return slices.Clone(c.inventory)
}

// InventorySpace returns the number of free bag slots.
func (c *Character) InventorySpace() int {
	return InventoryCapacity - len(c.inventory)
}

// HasItem reports whether at least one copy of itemID is in the bag.
func (c *Character) HasItem(itemID string) bool {
	return slices.Contains(c.inventory, itemID)
}

// CountItem returns how many copies of itemID are in the bag.
func (c *Character) CountItem(itemID string) int {
	n := 0
	for _, id := range c.inventory {
		if id == itemID {
			n++
		}
	}
	return n
}

// AddItem appends itemID to the bag.
func (c *Character) AddItem(itemID string) error {
	if len(c.inventory) >= InventoryCapacity {
		return fmt.Errorf("adding %q: %w", itemID, ErrInventoryFull)
	}
	c.inventory = append(c.inventory, itemID)
	return nil
}

// RemoveItem removes the first copy of itemID from the bag.
func (c *Character) RemoveItem(itemID string) error {
	idx := slices.Index(c.inventory, itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrItemNotFound, itemID)
	}
	c.inventory = slices.Delete(c.inventory, idx, idx+1)
	return nil
}

// ClearInventory empties the bag and returns what was in it.
func (c *Character) ClearInventory() []string {
	removed := c.inventory
	c.inventory = nil
	return removed
}

// InventoryEntry is one line of a grouped inventory listing.
type InventoryEntry struct {
	ItemID string
	Count  int
}

// InventorySummary groups bag contents by item in first-seen order.
func (c *Character) InventorySummary() []InventoryEntry {
	entries := make([]InventoryEntry, 0, len(c.inventory))
	index := make(map[string]int, len(c.inventory))
	for _, id := range c.inventory {
		if i, ok := index[id]; ok {
			entries[i].Count++
			continue
		}
		index[id] = len(entries)
		entries = append(entries, InventoryEntry{ItemID: id, Count: 1})
	}
	return entries
}

// Equipped returns the item in slot ("" if empty).
func (c *Character) Equipped(slot Slot) string {
	switch slot {
	case SlotWeapon:
		return c.equippedWeapon
	case SlotArmor:
		return c.equippedArmor
	default:
		return ""
	}
}

func (c *Character) slotRef(slot Slot) (*string, error) {
	switch slot {
	case SlotWeapon:
		return &c.equippedWeapon, nil
	case SlotArmor:
		return &c.equippedArmor, nil
	default:
		return nil, fmt.Errorf("unknown equipment slot %d", slot)
	}
}

// MoveToSlot takes one copy of itemID out of the bag and puts it into an
// empty slot. Stat effects are the caller's job.
func (c *Character) MoveToSlot(slot Slot, itemID string) error {
	ref, err := c.slotRef(slot)
	if err != nil {
		return err
	}
	if *ref != "" {
		return fmt.Errorf("%w: %s holds %q", ErrSlotOccupied, slot, *ref)
	}
	if err := c.RemoveItem(itemID); err != nil {
		return err
	}
	*ref = itemID
	return nil
}

// MoveFromSlot returns the item in slot to the bag and clears the slot.
// Returns "" when the slot was already empty.
func (c *Character) MoveFromSlot(slot Slot) (string, error) {
	ref, err := c.slotRef(slot)
	if err != nil {
		return "", err
	}
	itemID := *ref
	if itemID == "" {
		return "", nil
	}
	if err := c.AddItem(itemID); err != nil {
		return "", err
	}
	*ref = ""
	return itemID, nil
}
