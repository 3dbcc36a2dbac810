package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/questchronicles/internal/data"
)

func TestLoadCatalogs_CreatesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	catalogs, err := loadCatalogs(dir)
	require.NoError(t, err)
	assert.Positive(t, catalogs.Items.Len())
	assert.Positive(t, catalogs.Quests.Len())

	assert.FileExists(t, filepath.Join(dir, data.ItemsFile))
	assert.FileExists(t, filepath.Join(dir, data.QuestsFile))
}

func TestLoadCatalogs_InvalidItems(t *testing.T) {
	dir := t.TempDir()
	bad := "ITEM_ID: potion,large\nNAME: Large Potion\nTYPE: consumable\nEFFECT: health:50\nCOST: 40\nDESCRIPTION: d\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, data.ItemsFile), []byte(bad), 0o644))

	_, err := loadCatalogs(dir)
	assert.ErrorIs(t, err, data.ErrInvalidDataFormat)

	raw, err := os.ReadFile(filepath.Join(dir, data.ItemsFile))
	require.NoError(t, err)
	assert.Equal(t, bad, string(raw), "existing file is not overwritten")
}
