package services

import (
	"context"
	"fmt"
	"strings"

	"jiansou/backend/app/defaults"
	"jiansou/backend/app/dto"
	"jiansou/backend/app/models"
	"jiansou/backend/app/repo"

	"gorm.io/gorm"
)

const (
	defaultLinkIcon     = "fas fa-link"
	defaultLinkColor    = "#007DFF"
	defaultLinkCategory = "其他"
)

type QuickLinkService struct {
	db       *gorm.DB
	links    *repo.QuickLinkRepository
	defaults *defaults.Provider
}

func NewQuickLinkService(db *gorm.DB, p *defaults.Provider) *QuickLinkService {
	return &QuickLinkService{db: db, links: repo.NewQuickLinkRepository(db), defaults: p}
}

// List returns the owner's links, or the default catalog for a virtual owner.
func (s *QuickLinkService) List(ctx context.Context, owner models.Owner, category string) ([]dto.QuickLinkResponse, error) {
	userID, ok := owner.UserID()
	if !ok {
		return s.defaults.QuickLinks(category), nil
	}
	if category == defaults.AllCategories {
		category = ""
	}
	rows, err := s.links.ListByUser(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuickLinkResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.QuickLinkFromModel(&rows[i]))
	}
	return out, nil
}

func (s *QuickLinkService) Categories() []string { return s.defaults.Categories() }

func (s *QuickLinkService) Create(ctx context.Context, userID uint, req dto.QuickLinkRequest) (*dto.QuickLinkResponse, error) {
	name := strings.TrimSpace(req.Name)
	link := strings.TrimSpace(req.URL)
	if name == "" || link == "" {
		return nil, fmt.Errorf("%w: name and url are required", ErrInvalidInput)
	}
	l := &models.QuickLink{
		Name:     name,
		URL:      link,
		Icon:     orDefault(req.Icon, defaultLinkIcon),
		Color:    orDefault(req.Color, defaultLinkColor),
		Category: orDefault(req.Category, defaultLinkCategory),
		UserID:   userID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.links.WithTx(tx).Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.QuickLinkFromModel(l)
	return &resp, nil
}

// Update applies the present patch fields to a link owned by userID.
// ErrNotFound covers both missing and foreign rows.
func (s *QuickLinkService) Update(ctx context.Context, userID, id uint, patch dto.QuickLinkPatch) (*dto.QuickLinkResponse, error) {
	var updated *models.QuickLink
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := s.links.WithTx(tx)
		l, err := links.FindOwned(ctx, userID, id)
		if err != nil {
			return err
		}
		if patch.Name.Present() {
			if strings.TrimSpace(patch.Name.Value) == "" {
				return fmt.Errorf("%w: name", ErrInvalidInput)
			}
			l.Name = strings.TrimSpace(patch.Name.Value)
		}
		if patch.URL.Present() {
			if strings.TrimSpace(patch.URL.Value) == "" {
				return fmt.Errorf("%w: url", ErrInvalidInput)
			}
			l.URL = strings.TrimSpace(patch.URL.Value)
		}
		if patch.Icon.Present() {
			l.Icon = patch.Icon.Value
		}
		if patch.Color.Present() {
			l.Color = patch.Color.Value
		}
		if patch.Category.Present() {
			l.Category = patch.Category.Value
		}
		updated = l
		return links.Save(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.QuickLinkFromModel(updated)
	return &resp, nil
}

func (s *QuickLinkService) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.links.WithTx(tx).DeleteOwned(ctx, userID, id)
	})
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
