package data

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/udisondev/questchronicles/internal/model"
)

// ItemCatalog maps item ID to its definition.
// Read-only after construction.
type ItemCatalog struct {
	items map[string]model.Item
}

// NewItemCatalog builds a catalog. Later duplicates replace earlier ones.
func NewItemCatalog(items ...model.Item) *ItemCatalog {
	c := &ItemCatalog{items: make(map[string]model.Item, len(items))}
	for _, it := range items {
		c.items[it.ID] = it
	}
	return c
}

// Item looks up an item definition by ID.
func (c *ItemCatalog) Item(id string) (model.Item, error) {
	it, ok := c.items[id]
	if !ok {
		return model.Item{}, fmt.Errorf("%w: %q", ErrItemNotInCatalog, id)
	}
	return it, nil
}

// All returns every item sorted by ID.
func (c *ItemCatalog) All() []model.Item {
	out := make([]model.Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b model.Item) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Len returns the number of items.
func (c *ItemCatalog) Len() int {
	return len(c.items)
}

// QuestCatalog хранит определения квестов по ID.
// Read-only after construction.
type QuestCatalog struct {
	quests map[string]model.Quest
}

// NewQuestCatalog builds a catalog. Later duplicates replace earlier ones.
func NewQuestCatalog(quests ...model.Quest) *QuestCatalog {
	c := &QuestCatalog{quests: make(map[string]model.Quest, len(quests))}
	for _, q := range quests {
		c.quests[q.ID] = q
	}
	return c
}

// Quest looks up a quest definition by ID.
func (c *QuestCatalog) Quest(id string) (model.Quest, error) {
	q, ok := c.quests[id]
	if !ok {
		return model.Quest{}, fmt.Errorf("%w: %q", ErrQuestNotInCatalog, id)
	}
	return q, nil
}

// All returns every quest sorted by ID.
func (c *QuestCatalog) All() []model.Quest {
	out := make([]model.Quest, 0, len(c.quests))
	for _, q := range c.quests {
		out = append(out, q)
	}
	slices.SortFunc(out, func(a, b model.Quest) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Len returns the number of quests.
func (c *QuestCatalog) Len() int {
	return len(c.quests)
}
