package data

import (
	"log/slog"

	"github.com/udisondev/questchronicles/internal/model"
)

// LoadItems parses an item data file into a catalog.
//
// Block format:
//
//	ITEM_ID: iron_sword
//	NAME: Iron Sword
//	TYPE: weapon
//	EFFECT: strength:5
//	COST: 100
//	DESCRIPTION: A basic but reliable iron sword.
func LoadItems(path string) (*ItemCatalog, error) {
	blocks, err := readBlocks(path)
	if err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(blocks))
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		it, err := parseItem(b)
		if err != nil {
			return nil, err
		}
		if seen[it.ID] {
			return nil, b.errorf("duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
		items = append(items, it)
	}

	slog.Debug("loaded item catalog", "path", path, "count", len(items))
	return NewItemCatalog(items...), nil
}

func parseItem(b block) (model.Item, error) {
	var it model.Item
	var err error

	if it.ID, err = b.str("ITEM_ID"); err != nil {
		return it, err
	}
	if err := model.ValidateID(it.ID); err != nil {
		return it, b.errorf("ITEM_ID: %v", err)
	}
	if it.Name, err = b.str("NAME"); err != nil {
		return it, err
	}
	if it.Description, err = b.str("DESCRIPTION"); err != nil {
		return it, err
	}

	rawType, err := b.str("TYPE")
	if err != nil {
		return it, err
	}
	if it.Type, err = model.ParseItemType(rawType); err != nil {
		return it, b.errorf("item %q: %v", it.ID, err)
	}

	rawEffect, err := b.str("EFFECT")
	if err != nil {
		return it, err
	}
	if it.Effect, err = model.ParseEffect(rawEffect); err != nil {
		return it, b.errorf("item %q: %v", it.ID, err)
	}

	if it.Cost, err = b.nonNegative("COST"); err != nil {
		return it, err
	}
	if err := it.Validate(); err != nil {
		return it, b.errorf("item %q: %v", it.ID, err)
	}

	return it, nil
}
