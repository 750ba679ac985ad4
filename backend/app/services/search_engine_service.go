package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"jiansou/backend/app/defaults"
	"jiansou/backend/app/dto"
	"jiansou/backend/app/models"
	"jiansou/backend/app/repo"

	"gorm.io/gorm"
)

const (
	maxEngineNameLength = 100
	defaultEngineIcon   = "fas fa-search"
	defaultEngineColor  = "#007DFF"
)

type SearchEngineService struct {
	db       *gorm.DB
	engines  *repo.SearchEngineRepository
	defaults *defaults.Provider
}

func NewSearchEngineService(db *gorm.DB, p *defaults.Provider) *SearchEngineService {
	return &SearchEngineService{db: db, engines: repo.NewSearchEngineRepository(db), defaults: p}
}

func (s *SearchEngineService) List(ctx context.Context, owner models.Owner, activeOnly bool) ([]dto.SearchEngineResponse, error) {
	userID, ok := owner.UserID()
	if !ok {
		return s.defaults.SearchEngines(activeOnly), nil
	}
	rows, err := s.engines.ListByUser(ctx, userID, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SearchEngineResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.SearchEngineFromModel(&rows[i]))
	}
	return out, nil
}

// Create adds an engine for userID. Names are unique per user. Setting the
// default flag clears it on the user's other engines in the same transaction.
func (s *SearchEngineService) Create(ctx context.Context, userID uint, req dto.SearchEngineRequest) (*dto.SearchEngineResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxEngineNameLength {
		return nil, fmt.Errorf("%w: name", ErrInvalidInput)
	}
	if err := ValidateTemplate(req.URLTemplate); err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	e := &models.SearchEngine{
		Name:        name,
		DisplayName: orDefault(req.DisplayName, name),
		URLTemplate: req.URLTemplate,
		Icon:        orDefault(req.Icon, defaultEngineIcon),
		Color:       orDefault(req.Color, defaultEngineColor),
		IsActive:    active,
		IsDefault:   req.IsDefault,
		SortOrder:   req.SortOrder,
		UserID:      userID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		engines := s.engines.WithTx(tx)
		n, err := engines.CountByName(ctx, userID, name)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateName
		}
		if e.IsDefault {
			if err := engines.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		return engines.Create(ctx, e)
	})
	if err != nil {
		if !errors.Is(err, ErrDuplicateName) {
			if n, cerr := s.engines.CountByName(ctx, userID, name); cerr == nil && n > 0 {
				return nil, ErrDuplicateName
			}
		}
		return nil, err
	}
	resp := dto.SearchEngineFromModel(e)
	return &resp, nil
}

func (s *SearchEngineService) Update(ctx context.Context, userID, id uint, patch dto.SearchEnginePatch) (*dto.SearchEngineResponse, error) {
	if patch.URLTemplate.Present() {
		if err := ValidateTemplate(patch.URLTemplate.Value); err != nil {
			return nil, err
		}
	}
	var updated *models.SearchEngine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		engines := s.engines.WithTx(tx)
		e, err := engines.FindOwned(ctx, userID, id)
		if err != nil {
			return err
		}
		if patch.IsDefault.Present() && patch.IsDefault.Value {
			if err := engines.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		if patch.DisplayName.Present() {
			e.DisplayName = patch.DisplayName.Value
		}
		if patch.URLTemplate.Present() {
			e.URLTemplate = patch.URLTemplate.Value
		}
		if patch.Icon.Present() {
			e.Icon = patch.Icon.Value
		}
		if patch.Color.Present() {
			e.Color = patch.Color.Value
		}
		if patch.IsActive.Present() {
			e.IsActive = patch.IsActive.Value
		}
		if patch.IsDefault.Present() {
			e.IsDefault = patch.IsDefault.Value
		}
		if patch.SortOrder.Present() {
			e.SortOrder = patch.SortOrder.Value
		}
		updated = e
		return engines.Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.SearchEngineFromModel(updated)
	return &resp, nil
}

func (s *SearchEngineService) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.engines.WithTx(tx).DeleteOwned(ctx, userID, id)
	})
}

// GetDefault resolves the engine a search box should preselect.
func (s *SearchEngineService) GetDefault(ctx context.Context, owner models.Owner) (*dto.SearchEngineResponse, error) {
	userID, ok := owner.UserID()
	if !ok {
		e, found := s.defaults.DefaultEngine()
		if !found {
			return nil, ErrNotFound
		}
		return &e, nil
	}
	e, err := s.engines.FindDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.SearchEngineFromModel(e)
	return &resp, nil
}

// FindByName looks up one of userID's engines by short name.
func (s *SearchEngineService) FindByName(ctx context.Context, userID uint, name string) (*models.SearchEngine, error) {
	e, err := s.engines.FindByName(ctx, userID, name)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrEngineNotFound
	}
	return e, err
}
