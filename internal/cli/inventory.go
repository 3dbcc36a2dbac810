package cli

import (
	"github.com/udisondev/questchronicles/internal/game/session"
	"github.com/udisondev/questchronicles/internal/model"
)

func (a *App) inventoryMenu(s *session.Session) error {
	c := s.Character()
	for {
		a.printf("\n=== Inventory (%d/%d) ===\n", len(c.Inventory()), model.InventoryCapacity)
		entries := c.InventorySummary()
		if len(entries) == 0 {
			a.println("(empty)")
		}
		for _, e := range entries {
			name := e.ItemID
			if item, err := s.Items().Item(e.ItemID); err == nil {
				name = item.Name + " [" + e.ItemID + "]"
			}
			a.printf("- %s x%d\n", name, e.Count)
		}
		a.printf("Weapon: %s   Armor: %s\n", orNone(c.Equipped(model.SlotWeapon)), orNone(c.Equipped(model.SlotArmor)))

		a.println("\nOptions:")
		a.println("1. Use item")
		a.println("2. Equip weapon")
		a.println("3. Equip armor")
		a.println("4. Unequip weapon")
		a.println("5. Unequip armor")
		a.println("6. Drop item")
		a.println("7. Back")

		choice, err := a.choose("Choose (1-7): ", 7)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			id, err := a.prompt("Enter item_id to use: ")
			if err != nil {
				return err
			}
			item, err := s.Equipment().UseItem(c, id)
			if err != nil {
				a.printf("Cannot use item: %v\n", err)
				continue
			}
			a.printf("Used %s (%s).\n", item.Name, item.Effect)
		case 2, 3:
			slot := model.SlotWeapon
			if choice == 3 {
				slot = model.SlotArmor
			}
			id, err := a.prompt("Enter " + slot.String() + " item_id to equip: ")
			if err != nil {
				return err
			}
			prev, err := s.Equipment().Equip(c, slot, id)
			if err != nil {
				a.printf("Cannot equip: %v\n", err)
				continue
			}
			if prev != "" {
				a.printf("Unequipped %s.\n", prev)
			}
			a.printf("Equipped %s.\n", id)
		case 4, 5:
			slot := model.SlotWeapon
			if choice == 5 {
				slot = model.SlotArmor
			}
			removed, err := s.Equipment().Unequip(c, slot)
			if err != nil {
				a.printf("Cannot unequip: %v\n", err)
				continue
			}
			if removed == "" {
				a.println("Nothing equipped there.")
				continue
			}
			a.printf("Unequipped %s.\n", removed)
		case 6:
			id, err := a.prompt("Enter item_id to drop: ")
			if err != nil {
				return err
			}
			if err := c.RemoveItem(id); err != nil {
				a.println("Item not found.")
				continue
			}
			a.printf("Dropped %s.\n", id)
		case 7:
			return nil
		}
	}
}
