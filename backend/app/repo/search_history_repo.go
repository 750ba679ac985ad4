package repo

import (
	"context"

	"jiansou/backend/app/models"

	"gorm.io/gorm"
)

type SearchHistoryRepository struct{ db *gorm.DB }

func NewSearchHistoryRepository(db *gorm.DB) *SearchHistoryRepository {
	return &SearchHistoryRepository{db: db}
}

func (r *SearchHistoryRepository) Create(ctx context.Context, h *models.SearchHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// LatestByUser returns up to limit entries, newest first.
func (r *SearchHistoryRepository) LatestByUser(ctx context.Context, userID uint, limit int) ([]models.SearchHistory, error) {
	if limit <= 0 {
		limit = 1
	}
	var rows []models.SearchHistory
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *SearchHistoryRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SearchHistory{})
	return res.RowsAffected, res.Error
}
