package services

import (
	"context"
	"fmt"
	"strings"

	"jiansou/backend/app/dto"
	"jiansou/backend/app/models"
	"jiansou/backend/app/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	DefaultSearchEngine = "baidu"
	maxHistoryLimit     = 100
	maxQueryLength      = 255
)

type SearchService struct {
	engines      *SearchEngineService
	history      *repo.SearchHistoryRepository
	historyLimit int
	log          zerolog.Logger
}

func NewSearchService(db *gorm.DB, engines *SearchEngineService, historyLimit int, log zerolog.Logger) *SearchService {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &SearchService{
		engines:      engines,
		history:      repo.NewSearchHistoryRepository(db),
		historyLimit: historyLimit,
		log:          log,
	}
}

// Search builds the engine URL for query and records it in the user's
// history. History failures never fail the search.
func (s *SearchService) Search(ctx context.Context, userID uint, req dto.SearchRequest) (*dto.SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" || len([]rune(req.Query)) > maxQueryLength {
		return nil, fmt.Errorf("%w: query", ErrInvalidInput)
	}
	name := strings.TrimSpace(req.SearchEngine)
	if name == "" {
		name = DefaultSearchEngine
	}
	engine, err := s.engines.FindByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if err := s.recordHistory(ctx, userID, req.Query, engine.Name); err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Str("engine", engine.Name).Msg("failed to record search history")
	}
	return &dto.SearchResponse{
		SearchURL:    ExpandTemplate(engine.URLTemplate, req.Query),
		SearchEngine: engine.DisplayName,
		Query:        req.Query,
	}, nil
}

func (s *SearchService) recordHistory(ctx context.Context, userID uint, query, engine string) error {
	return s.history.Create(ctx, &models.SearchHistory{Query: query, SearchEngine: engine, UserID: userID})
}

// History returns the newest entries first. A non-positive limit uses the
// configured default.
func (s *SearchService) History(ctx context.Context, userID uint, limit int) ([]dto.SearchHistoryResponse, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	rows, err := s.history.LatestByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SearchHistoryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.SearchHistoryFromModel(&rows[i]))
	}
	return out, nil
}

func (s *SearchService) ClearHistory(ctx context.Context, userID uint) (int64, error) {
	return s.history.DeleteByUser(ctx, userID)
}
