// Package defaults serves the read-only catalog shown to anonymous visitors
// and copied into every new account.
package defaults

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"jiansou/backend/app/dto"
	"jiansou/backend/app/models"
)

// AllCategories disables category filtering.
const AllCategories = "all"

// Provider is immutable after construction and safe for concurrent use.
type Provider struct {
	catalog Catalog
	now     func() time.Time
}

func NewProvider(c Catalog) *Provider {
	return &Provider{catalog: c.clone(), now: time.Now}
}

// LoadFile reads a catalog from a JSON file. Sections missing from the file
// fall back to the builtin ones.
func LoadFile(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	builtin := Builtin()
	if c.QuickLinks == nil {
		c.QuickLinks = builtin.QuickLinks
	}
	if c.SearchEngines == nil {
		c.SearchEngines = builtin.SearchEngines
	}
	if c.Categories == nil {
		c.Categories = builtin.Categories
	}
	return c, nil
}

func (c Catalog) clone() Catalog {
	return Catalog{
		QuickLinks:    append([]QuickLink(nil), c.QuickLinks...),
		SearchEngines: append([]SearchEngine(nil), c.SearchEngines...),
		Categories:    append([]string(nil), c.Categories...),
	}
}

// Catalog returns a copy of the raw entries, used to seed new accounts.
func (p *Provider) Catalog() Catalog { return p.catalog.clone() }

func (p *Provider) Categories() []string { return append([]string(nil), p.catalog.Categories...) }

// QuickLinks materializes the catalog links, filtered by exact category
// unless category is empty or "all". Ids are positional and only stable for
// a given catalog.
func (p *Provider) QuickLinks(category string) []dto.QuickLinkResponse {
	now := p.now()
	out := make([]dto.QuickLinkResponse, 0, len(p.catalog.QuickLinks))
	for i, l := range p.catalog.QuickLinks {
		if category != "" && category != AllCategories && l.Category != category {
			continue
		}
		out = append(out, dto.QuickLinkResponse{
			ID:        uint(i + 1),
			Name:      l.Name,
			URL:       l.URL,
			Icon:      l.Icon,
			Color:     l.Color,
			Category:  l.Category,
			Owner:     models.VirtualOwner(),
			CreatedAt: now,
		})
	}
	return out
}

// SearchEngines materializes the catalog engines ordered by sort order.
func (p *Provider) SearchEngines(activeOnly bool) []dto.SearchEngineResponse {
	now := p.now()
	out := make([]dto.SearchEngineResponse, 0, len(p.catalog.SearchEngines))
	for i, e := range p.catalog.SearchEngines {
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, dto.SearchEngineResponse{
			ID:          uint(i + 1),
			Name:        e.Name,
			DisplayName: e.DisplayName,
			URLTemplate: e.URLTemplate,
			Icon:        e.Icon,
			Color:       e.Color,
			IsActive:    e.IsActive,
			IsDefault:   e.IsDefault,
			SortOrder:   e.SortOrder,
			Owner:       models.VirtualOwner(),
			CreatedAt:   now,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// DefaultEngine returns the active entry flagged default, else the first
// active entry.
func (p *Provider) DefaultEngine() (dto.SearchEngineResponse, bool) {
	engines := p.SearchEngines(true)
	for _, e := range engines {
		if e.IsDefault {
			return e, true
		}
	}
	if len(engines) == 0 {
		return dto.SearchEngineResponse{}, false
	}
	return engines[0], true
}
