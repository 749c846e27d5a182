package opentimetables

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/simonrob/opentimetables-utils/types"
)

// Reads the flat module identifier cache written by BuildModuleCache.
func LoadModuleCache(path string) ([]types.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read module cache: %w", err)
	}

	var categories []types.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("could not parse module cache %s: %w", path, err)
	}
	return categories, nil
}

// Walks the full category listing and writes the result to the cache file as
// one flat JSON array. A mismatch against the declared total is warned about
// but not fatal. Returns the number of modules cached.
func (c *Client) BuildModuleCache(ctx context.Context, path string) (int, error) {
	fmt.Printf("Building module cache from %s\n", c.cfg.BaseURL)

	categories, declared, err := c.SearchAllCategories(ctx, "")
	if err != nil {
		return 0, err
	}
	if declared > 0 && len(categories) != declared {
		Warnf("Warning: cached %d modules but the service declared %d", len(categories), declared)
	}

	// sort by display name so rebuilt caches serialize in a stable order
	slices.SortFunc(categories, func(a, b types.Category) int {
		return strings.Compare(a.Name, b.Name)
	})

	data, err := json.Marshal(categories)
	if err != nil {
		return 0, fmt.Errorf("could not encode module cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("could not write module cache: %w", err)
	}

	return len(categories), nil
}
