// Package shop implements buying and selling items for gold.
package shop

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/questchronicles/internal/model"
)

// SellPrice returns what a shop pays for item: half its cost, rounded down.
func SellPrice(item model.Item) int {
	return item.Cost / 2
}

// Purchase buys one copy of item for c. On failure gold and inventory are
// unchanged. Returns the remaining gold.
func Purchase(c *model.Character, item model.Item) (int, error) {
	if c.Gold() < item.Cost {
		return c.Gold(), fmt.Errorf("%w: %q costs %d, have %d gold", model.ErrInsufficientResources, item.ID, item.Cost, c.Gold())
	}
	if c.InventorySpace() == 0 {
		return c.Gold(), fmt.Errorf("buying %q: %w", item.ID, model.ErrInventoryFull)
	}

	if err := c.AddItem(item.ID); err != nil {
		return c.Gold(), err
	}
	gold, err := c.AddGold(-item.Cost)
	if err != nil {
		_ = c.RemoveItem(item.ID)
		return c.Gold(), err
	}

	slog.Info("item purchased", "character", c.Name(), "item", item.ID, "cost", item.Cost, "gold", gold)
	return gold, nil
}

// Sell removes one copy of item from c's inventory and credits SellPrice.
// Equipped items must be unequipped first. Returns the new gold total.
func Sell(c *model.Character, item model.Item) (int, error) {
	if err := c.RemoveItem(item.ID); err != nil {
		return c.Gold(), fmt.Errorf("selling %q: %w", item.ID, err)
	}
	price := SellPrice(item)
	gold, err := c.AddGold(price)
	if err != nil {
		_ = c.AddItem(item.ID)
		return c.Gold(), err
	}

	slog.Info("item sold", "character", c.Name(), "item", item.ID, "price", price, "gold", gold)
	return gold, nil
}

// Catalog lists the items a shop offers. *data.ItemCatalog satisfies it.
type Catalog interface {
	All() []model.Item
}

// Listing returns the shop's stock sorted by item ID.
func Listing(catalog Catalog) []model.Item {
	return catalog.All()
}
