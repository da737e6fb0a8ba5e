package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lc-tui/lc/internal/markup"
)

var ErrProblemNotFound = errors.New("problem not found")

const cacheFile = "problems.json"

// Cache is the locally persisted problem list
type Cache struct {
	Problems []*Problem `json:"problems"`

	path string
}

// LoadCache reads the cache from dir. A missing file yields an empty cache.
func LoadCache(dir string) (*Cache, error) {
	path := filepath.Join(dir, cacheFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Cache{Problems: []*Problem{}, path: path}, nil
		}
		return nil, fmt.Errorf("failed to read problem cache: %w", err)
	}

	c := &Cache{path: path}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse problem cache: %w", err)
	}

	if c.ConvertMissingDescriptions() {
		// not fatal, conversions will happen again next time
		if err := c.Save(); err != nil {
			slog.Warn("failed to save converted descriptions", "err", err)
		}
	}

	return c, nil
}

// Save writes the cache back to where it was loaded from
func (c *Cache) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal problem cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write problem cache: %w", err)
	}
	return nil
}

// ConvertMissingDescriptions renders any description that has no plain text
// rendition yet. Returns true if anything was converted.
func (c *Cache) ConvertMissingDescriptions() bool {
	converted := false
	for _, p := range c.Problems {
		if p.Description != "" && p.RenderedDescription == "" {
			p.RenderedDescription = markup.Render(p.Description).String()
			converted = true
		}
	}
	return converted
}

// Merge adds new problems and refreshes known ones, matched by slug.
// Fetched content is kept when the incoming problem has none.
func (c *Cache) Merge(problems []*Problem) {
	bySlug := make(map[string]*Problem, len(c.Problems))
	for _, p := range c.Problems {
		bySlug[p.TitleSlug] = p
	}

	for _, p := range problems {
		existing, ok := bySlug[p.TitleSlug]
		if !ok {
			c.Problems = append(c.Problems, p)
			bySlug[p.TitleSlug] = p
			continue
		}

		if p.Description == "" {
			p.Description = existing.Description
			p.RenderedDescription = existing.RenderedDescription
		} else if p.Description != existing.Description {
			p.RenderedDescription = ""
		}
		if p.Snippet == "" {
			p.Snippet = existing.Snippet
		}
		if len(p.Tags) == 0 {
			p.Tags = existing.Tags
		}
		*existing = *p
	}

	c.ConvertMissingDescriptions()
	c.Sort()
}

// Sort orders problems by their numeric id
func (c *Cache) Sort() {
	sort.SliceStable(c.Problems, func(i, j int) bool {
		return c.Problems[i].Number() < c.Problems[j].Number()
	})
}

// Find looks a problem up by id or slug
func (c *Cache) Find(idOrSlug string) (*Problem, error) {
	key := strings.TrimSpace(idOrSlug)
	for _, p := range c.Problems {
		if p.ID == key || strings.EqualFold(p.TitleSlug, key) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", idOrSlug, ErrProblemNotFound)
}
