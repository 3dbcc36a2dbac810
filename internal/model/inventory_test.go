package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillInventory(t *testing.T, c *Character, n int) {
	t.Helper()
	for i := range n {
		require.NoError(t, c.AddItem(fmt.Sprintf("filler_%02d", i)))
	}
}

func TestInventory_AddRemove(t *testing.T) {
	c := newTestCharacter(t, ClassWarrior)

	require.NoError(t, c.AddItem("health_potion"))
	require.NoError(t, c.AddItem("iron_sword"))
	require.NoError(t, c.AddItem("health_potion"))

	assert.Equal(t, []string{"health_potion", "iron_sword", "health_potion"}, c.Inventory())
	assert.Equal(t, 2, c.CountItem("health_potion"))
	assert.True(t, c.HasItem("iron_sword"))
	assert.Equal(t, InventoryCapacity-3, c.InventorySpace())

	require.NoError(t, c.RemoveItem("health_potion"))
	assert.Equal(t, []string{"iron_sword", "health_potion"}, c.Inventory(), "first copy removed")

	err := c.RemoveItem("dragon_scale")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestInventory_Capacity(t *testing.T) {
	c := newTestCharacter(t, ClassWarrior)
	fillInventory(t, c, InventoryCapacity)

	err := c.AddItem("one_more")
	assert.ErrorIs(t, err, ErrInventoryFull)
	assert.Len(t, c.Inventory(), InventoryCapacity)
	assert.Equal(t, 0, c.InventorySpace())
}

func TestInventory_CopyIsDetached(t *testing.T) {
	c := newTestCharacter(t, ClassWarrior)
	require.NoError(t, c.AddItem("a"))

	inv := c.Inventory()
	inv[0] = "b"

	assert.Equal(t, []string{"a"}, c.Inventory())
}

func TestInventory_ClearAndSummary(t *testing.T) {
	c := newTestCharacter(t, ClassWarrior)
	for _, id := range []string{"potion", "sword", "potion", "shield", "potion"} {
		require.NoError(t, c.AddItem(id))
	}

	assert.Equal(t, []InventoryEntry{
		{ItemID: "potion", Count: 3},
		{ItemID: "sword", Count: 1},
		{ItemID: "shield", Count: 1},
	}, c.InventorySummary())

	removed := c.ClearInventory()
	assert.Len(t, removed, 5)
	assert.Empty(t, c.Inventory())
}

func TestMoveToSlot(t *testing.T) {
	c := newTestCharacter(t, ClassWarrior)
	require.NoError(t, c.AddItem("iron_sword"))

	require.NoError(t, c.MoveToSlot(SlotWeapon, "iron_sword"))
	assert.Equal(t, "iron_sword", c.Equipped(SlotWeapon))
	assert.False(t, c.HasItem("iron_sword"), "equipped item leaves the bag")

	require.NoError(t, c.AddItem("steel_sword"))
	err := c.MoveToSlot(SlotWeapon, "steel_sword")
	assert.ErrorIs(t, err, ErrSlotOccupied)
	assert.True(t, c.HasItem("steel_sword"))

	err = c.MoveToSlot(SlotArmor, "leather_armor")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Empty(t, c.Equipped(SlotArmor))
}

func TestMoveFromSlot(t *testing.T) {
	c := newTestCharacter(t, ClassWarrior)

	id, err := c.MoveFromSlot(SlotArmor)
	require.NoError(t, err)
	assert.Empty(t, id, "empty slot")

	require.NoError(t, c.AddItem("leather_armor"))
	require.NoError(t, c.MoveToSlot(SlotArmor, "leather_armor"))
	fillInventory(t, c, InventoryCapacity)

	_, err = c.MoveFromSlot(SlotArmor)
	assert.ErrorIs(t, err, ErrInventoryFull)
	assert.Equal(t, "leather_armor", c.Equipped(SlotArmor))

	require.NoError(t, c.RemoveItem("filler_00"))
	id, err = c.MoveFromSlot(SlotArmor)
	require.NoError(t, err)
	assert.Equal(t, "leather_armor", id)
	assert.Empty(t, c.Equipped(SlotArmor))
	assert.True(t, c.HasItem("leather_armor"))
}
