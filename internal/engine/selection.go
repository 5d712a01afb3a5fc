package engine

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/netbench-tools/speedtest-batch/internal/model"
)

// Select picks the server IDs to test this run.
// count == 0 returns every discovered ID in discovery order. count > 0 picks
// a uniformly random subset of that size without replacement; a count larger
// than the pool returns the whole pool without error.
func Select(entries []model.ServerEntry, count int) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	if count <= 0 || count >= len(ids) {
		if count > 0 {
			rand.Shuffle(len(ids), func(i, j int) {
				ids[i], ids[j] = ids[j], ids[i]
			})
		}
		return ids
	}

	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids[:count]
}

// LoadSelection reads a user-supplied server file: one ID per line, blank
// lines dropped, surrounding whitespace trimmed. The IDs themselves are not
// validated; an unknown ID will simply fail when tested.
func LoadSelection(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read server file %s: %w", path, err)
	}

	var ids []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	return ids, nil
}

// Descriptions indexes discovered entries by ID for best-effort lookup.
func Descriptions(entries []model.ServerEntry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.ID] = e.Description
	}
	return m
}
