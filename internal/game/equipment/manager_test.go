package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/questchronicles/internal/data"
	"github.com/udisondev/questchronicles/internal/model"
)

func newTestManager() *Manager {
	return NewManager(data.NewItemCatalog(
		model.Item{ID: "iron_sword", Name: "Iron Sword", Type: model.ItemTypeWeapon, Effect: model.Effect{Stat: model.StatStrength, Delta: 5}, Cost: 100},
		model.Item{ID: "oak_staff", Name: "Oak Staff", Type: model.ItemTypeWeapon, Effect: model.Effect{Stat: model.StatMagic, Delta: 6}, Cost: 120},
		model.Item{ID: "leather_armor", Name: "Leather Armor", Type: model.ItemTypeArmor, Effect: model.Effect{Stat: model.StatMaxHealth, Delta: 15}, Cost: 80},
		model.Item{ID: "cursed_blade", Name: "Cursed Blade", Type: model.ItemTypeWeapon, Effect: model.Effect{Stat: model.StatStrength, Delta: -50}, Cost: 1},
		model.Item{ID: "cursed_mail", Name: "Cursed Mail", Type: model.ItemTypeArmor, Effect: model.Effect{Stat: model.StatMaxHealth, Delta: -500}, Cost: 1},
		model.Item{ID: "blood_plate", Name: "Blood Plate", Type: model.ItemTypeArmor, Effect: model.Effect{Stat: model.StatHealth, Delta: 50}, Cost: 300},
		model.Item{ID: "health_potion", Name: "Health Potion", Type: model.ItemTypeConsumable, Effect: model.Effect{Stat: model.StatHealth, Delta: 25}, Cost: 25},
	))
}

func newTestCharacter(t *testing.T, items ...string) *model.Character {
	t.Helper()
	c, err := model.NewCharacter("Hero", model.ClassWarrior)
	require.NoError(t, err, "NewCharacter")
	for _, id := range items {
		require.NoError(t, c.AddItem(id), "AddItem(%s)", id)
	}
	return c
}

func fillInventory(t *testing.T, c *model.Character) {
	t.Helper()
	for c.InventorySpace() > 0 {
		require.NoError(t, c.AddItem("health_potion"))
	}
}

func TestEquip(t *testing.T) {
	m := newTestManager()
	c := newTestCharacter(t, "iron_sword")

	prev, err := m.Equip(c, model.SlotWeapon, "iron_sword")
	require.NoError(t, err)
	assert.Empty(t, prev)

	assert.Equal(t, 20, c.Strength())
	assert.Equal(t, "iron_sword", c.Equipped(model.SlotWeapon))
	assert.False(t, c.HasItem("iron_sword"), "equipped item leaves the bag")

	item, ok, err := m.ItemIn(c, model.SlotWeapon)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Iron Sword", item.Name)
}

func TestEquipUnequip_RoundTrip(t *testing.T) {
	m := newTestManager()

	tests := []struct {
		name string
		slot model.Slot
		item string
	}{
		{"weapon strength", model.SlotWeapon, "iron_sword"},
		{"weapon magic", model.SlotWeapon, "oak_staff"},
		{"armor max health", model.SlotArmor, "leather_armor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCharacter(t, tt.item)
			before := c.Record()

			_, err := m.Equip(c, tt.slot, tt.item)
			require.NoError(t, err)
			removed, err := m.Unequip(c, tt.slot)
			require.NoError(t, err)

			assert.Equal(t, tt.item, removed)
			assert.Equal(t, before, c.Record())
		})
	}
}

func TestEquip_Swap(t *testing.T) {
	m := newTestManager()
	c := newTestCharacter(t, "iron_sword", "oak_staff")

	_, err := m.Equip(c, model.SlotWeapon, "iron_sword")
	require.NoError(t, err)

	prev, err := m.Equip(c, model.SlotWeapon, "oak_staff")
	require.NoError(t, err)
	assert.Equal(t, "iron_sword", prev)

	assert.Equal(t, 15, c.Strength(), "sword bonus reversed")
	assert.Equal(t, 11, c.Magic())
	assert.Equal(t, []string{"iron_sword"}, c.Inventory())
}

func TestEquip_Errors(t *testing.T) {
	m := newTestManager()

	t.Run("not in inventory", func(t *testing.T) {
		c := newTestCharacter(t)
		_, err := m.Equip(c, model.SlotWeapon, "iron_sword")
		assert.ErrorIs(t, err, model.ErrItemNotFound)
	})

	t.Run("type mismatch", func(t *testing.T) {
		c := newTestCharacter(t, "leather_armor")
		_, err := m.Equip(c, model.SlotWeapon, "leather_armor")
		assert.ErrorIs(t, err, model.ErrItemTypeMismatch)
		assert.True(t, c.HasItem("leather_armor"))
	})

	t.Run("unknown to catalog", func(t *testing.T) {
		c := newTestCharacter(t, "mystery")
		_, err := m.Equip(c, model.SlotWeapon, "mystery")
		assert.ErrorIs(t, err, data.ErrItemNotInCatalog)
	})

	t.Run("full inventory keeps previous item equipped", func(t *testing.T) {
		c := newTestCharacter(t, "iron_sword", "oak_staff")
		_, err := m.Equip(c, model.SlotWeapon, "iron_sword")
		require.NoError(t, err)
		fillInventory(t, c)
		before := c.Record()

		_, err = m.Equip(c, model.SlotWeapon, "oak_staff")
		assert.ErrorIs(t, err, model.ErrInventoryFull)
		assert.Equal(t, before, c.Record())
	})

	t.Run("underflowing effect restores previous item", func(t *testing.T) {
		c := newTestCharacter(t, "iron_sword", "cursed_blade")
		_, err := m.Equip(c, model.SlotWeapon, "iron_sword")
		require.NoError(t, err)
		before := c.Record()

		_, err = m.Equip(c, model.SlotWeapon, "cursed_blade")
		assert.ErrorIs(t, err, model.ErrStatUnderflow)
		assert.Equal(t, before, c.Record())
	})
}

func TestEquip_HealthEffectRejected(t *testing.T) {
	m := newTestManager()

	tests := []struct {
		name   string
		damage int
	}{
		{"full health", 0},
		{"wounded", 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCharacter(t, "blood_plate")
			c.TakeDamage(tt.damage)
			before := c.Record()

			_, err := m.Equip(c, model.SlotArmor, "blood_plate")
			assert.ErrorIs(t, err, model.ErrInvalidEffectFormat)
			assert.Equal(t, before, c.Record())

			removed, err := m.Unequip(c, model.SlotArmor)
			require.NoError(t, err)
			assert.Empty(t, removed)
			assert.Equal(t, before, c.Record())
		})
	}
}

func TestEquip_FailedSwapKeepsHealth(t *testing.T) {
	m := newTestManager()
	c := newTestCharacter(t, "leather_armor", "health_potion", "cursed_mail")

	_, err := m.Equip(c, model.SlotArmor, "leather_armor")
	require.NoError(t, err)
	_, err = m.UseItem(c, "health_potion")
	require.NoError(t, err)
	require.Equal(t, 135, c.Health())
	before := c.Record()

	_, err = m.Equip(c, model.SlotArmor, "cursed_mail")
	assert.ErrorIs(t, err, model.ErrStatUnderflow)
	assert.Equal(t, before, c.Record())
}

func TestUnequip(t *testing.T) {
	m := newTestManager()

	t.Run("empty slot is a no-op", func(t *testing.T) {
		c := newTestCharacter(t)
		before := c.Record()

		removed, err := m.Unequip(c, model.SlotArmor)
		require.NoError(t, err)
		assert.Empty(t, removed)
		assert.Equal(t, before, c.Record())
	})

	t.Run("full inventory", func(t *testing.T) {
		c := newTestCharacter(t, "leather_armor")
		_, err := m.Equip(c, model.SlotArmor, "leather_armor")
		require.NoError(t, err)
		fillInventory(t, c)

		_, err = m.Unequip(c, model.SlotArmor)
		assert.ErrorIs(t, err, model.ErrInventoryFull)
		assert.Equal(t, "leather_armor", c.Equipped(model.SlotArmor))
		assert.Equal(t, 135, c.MaxHealth(), "bonus still applied")
	})

	t.Run("lowers health above new max", func(t *testing.T) {
		c := newTestCharacter(t, "leather_armor", "health_potion")
		_, err := m.Equip(c, model.SlotArmor, "leather_armor")
		require.NoError(t, err)
		_, err = m.UseItem(c, "health_potion")
		require.NoError(t, err)
		assert.Equal(t, 135, c.Health())

		_, err = m.Unequip(c, model.SlotArmor)
		require.NoError(t, err)
		assert.Equal(t, 120, c.MaxHealth())
		assert.Equal(t, 120, c.Health())
	})
}

func TestUseItem(t *testing.T) {
	m := newTestManager()

	t.Run("heals and consumes one copy", func(t *testing.T) {
		c := newTestCharacter(t, "health_potion", "health_potion")
		c.TakeDamage(40)

		item, err := m.UseItem(c, "health_potion")
		require.NoError(t, err)
		assert.Equal(t, "health_potion", item.ID)
		assert.Equal(t, 105, c.Health())
		assert.Equal(t, 1, c.CountItem("health_potion"))
	})

	t.Run("healing capped at max", func(t *testing.T) {
		c := newTestCharacter(t, "health_potion")
		c.TakeDamage(5)

		_, err := m.UseItem(c, "health_potion")
		require.NoError(t, err)
		assert.Equal(t, c.MaxHealth(), c.Health())
	})

	t.Run("not consumable", func(t *testing.T) {
		c := newTestCharacter(t, "iron_sword")
		_, err := m.UseItem(c, "iron_sword")
		assert.ErrorIs(t, err, model.ErrItemTypeMismatch)
		assert.True(t, c.HasItem("iron_sword"))
	})

	t.Run("missing", func(t *testing.T) {
		c := newTestCharacter(t)
		_, err := m.UseItem(c, "health_potion")
		assert.ErrorIs(t, err, model.ErrItemNotFound)
	})

	t.Run("dead character", func(t *testing.T) {
		c := newTestCharacter(t, "health_potion")
		c.TakeDamage(c.MaxHealth())
		_, err := m.UseItem(c, "health_potion")
		assert.ErrorIs(t, err, model.ErrCharacterDead)
		assert.True(t, c.IsDead())
	})
}
