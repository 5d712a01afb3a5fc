package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netbench-tools/speedtest-batch/internal/model"
)

func sampleEntries() []model.ServerEntry {
	return []model.ServerEntry{
		{ID: "1001", Description: "Example ISP A (Springfield, US)"},
		{ID: "1002", Description: "Example ISP B (Shelbyville, US)"},
		{ID: "1003", Description: "Example ISP C (Capital City, US)"},
	}
}

func TestSelectAll(t *testing.T) {
	got := Select(sampleEntries(), 0)
	assert.Equal(t, []string{"1001", "1002", "1003"}, got, "count 0 must return every ID in discovery order")
}

func TestSelectSubset(t *testing.T) {
	entries := sampleEntries()
	discovered := map[string]bool{"1001": true, "1002": true, "1003": true}

	// Shuffling is random; check the contract, not a fixed order.
	for i := 0; i < 20; i++ {
		got := Select(entries, 2)
		require.Len(t, got, 2)

		seen := map[string]bool{}
		for _, id := range got {
			assert.True(t, discovered[id], "selected ID %s was never discovered", id)
			assert.False(t, seen[id], "duplicate ID %s in selection", id)
			seen[id] = true
		}
	}
}

func TestSelectCountExceedsPool(t *testing.T) {
	got := Select(sampleEntries(), 10)
	assert.ElementsMatch(t, []string{"1001", "1002", "1003"}, got)
}

func TestSelectEmptyPool(t *testing.T) {
	assert.Empty(t, Select(nil, 5))
}

func TestLoadSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.txt")
	require.NoError(t, os.WriteFile(path, []byte("1001\n  9999\n\n1002\n"), 0644))

	got, err := LoadSelection(path)
	require.NoError(t, err)
	// Contents pass through unvalidated; 9999 is kept even if no such server exists.
	assert.Equal(t, []string{"1001", "9999", "1002"}, got)
}

func TestLoadSelectionMissingFile(t *testing.T) {
	_, err := LoadSelection(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestDescriptions(t *testing.T) {
	descs := Descriptions(sampleEntries())
	assert.Equal(t, "Example ISP B (Shelbyville, US)", descs["1002"])

	assert.Equal(t, "server 4242", describe(descs, "4242"), "unknown IDs get a synthetic label")
	assert.Equal(t, "server 4242", describe(nil, "4242"))
}
