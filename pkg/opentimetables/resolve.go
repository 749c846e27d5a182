package opentimetables

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/simonrob/opentimetables-utils/types"
)

// Represents one resolved module: the display name and identity of a category
// plus the requested code(s) that matched it.
type Resolution struct {
	Name     string
	Identity string
	Codes    []string
}

// Represents the mapping step from human module codes to service identities.
// A local cache file is preferred when one exists; otherwise each code is
// searched against the service directly.
type Resolver struct {
	cfg    Config
	client *Client
}

// Creates a resolver backed by the given client and run configuration.
func NewResolver(cfg Config, client *Client) *Resolver {
	return &Resolver{cfg: cfg, client: client}
}

// Resolves module codes into categories. Matching is a case-insensitive
// substring test on the category display name, so one code can match several
// modules and several codes can match the same module. A code without any
// match produces a warning and is skipped. The returned order follows the
// first appearance of each matched module.
func (r *Resolver) Resolve(ctx context.Context, codes []string) ([]Resolution, error) {
	cached, err := LoadModuleCache(r.cfg.CacheFile)
	switch {
	case err == nil:
		fmt.Printf("Resolving module codes against cached list %s\n", r.cfg.CacheFile)
		return r.resolveFromCache(cached, codes), nil
	case errors.Is(err, os.ErrNotExist):
		return r.resolveRemote(ctx, codes)
	default:
		return nil, err
	}
}

func (r *Resolver) resolveFromCache(categories []types.Category, codes []string) []Resolution {
	var set resolutionSet
	for _, code := range codes {
		found := false
		for _, category := range categories {
			if !strings.Contains(strings.ToLower(category.Name), strings.ToLower(code)) {
				continue
			}
			found = true
			set.add(category, code)
		}
		if !found {
			Warnf("\tWarning: module %s not found in %s; skipping", code, r.cfg.CacheFile)
		}
	}
	return set.resolutions
}

func (r *Resolver) resolveRemote(ctx context.Context, codes []string) ([]Resolution, error) {
	var set resolutionSet
	for _, code := range codes {
		fmt.Printf("Searching for `%s`:\n", code)

		// The search accepts keywords as well as module codes, but keyword
		// results are far less reliable.
		page, err := r.client.SearchCategories(ctx, code, 1)
		if err != nil {
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				return nil, err
			}
			page = &types.CategoryPage{}
		}

		for _, category := range page.Results {
			fmt.Printf("\tAdding module result %s : %s\n", category.Name, category.Identity)
			set.add(category, code)
		}
		if page.TotalPages > 1 {
			Warnf("\tWarning: found more than one page of results; additional pages will be skipped")
		}
		if len(page.Results) == 0 {
			Warnf("\tWarning: module %s not found at %s; skipping", code, r.cfg.BaseURL)
		}
	}
	return set.resolutions, nil
}

// Collects resolutions in first-seen order, merging repeat matches of the
// same category into one entry.
type resolutionSet struct {
	resolutions []Resolution
	index       map[string]int
}

func (s *resolutionSet) add(category types.Category, code string) {
	if s.index == nil {
		s.index = map[string]int{}
	}
	if i, ok := s.index[category.Identity]; ok {
		for _, existing := range s.resolutions[i].Codes {
			if existing == code {
				return
			}
		}
		s.resolutions[i].Codes = append(s.resolutions[i].Codes, code)
		return
	}
	s.index[category.Identity] = len(s.resolutions)
	s.resolutions = append(s.resolutions, Resolution{
		Name:     category.Name,
		Identity: category.Identity,
		Codes:    []string{code},
	})
}
