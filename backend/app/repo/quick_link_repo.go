package repo

import (
	"context"

	"jiansou/backend/app/models"

	"gorm.io/gorm"
)

type QuickLinkRepository struct{ db *gorm.DB }

func NewQuickLinkRepository(db *gorm.DB) *QuickLinkRepository { return &QuickLinkRepository{db: db} }

func (r *QuickLinkRepository) WithTx(tx *gorm.DB) *QuickLinkRepository {
	return &QuickLinkRepository{db: tx}
}

// ListByUser returns a user's links in insertion order, optionally limited to
// one category.
func (r *QuickLinkRepository) ListByUser(ctx context.Context, userID uint, category string) ([]models.QuickLink, error) {
	var links []models.QuickLink
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("id ASC").Find(&links).Error
	return links, err
}

func (r *QuickLinkRepository) Create(ctx context.Context, l *models.QuickLink) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *QuickLinkRepository) CreateBatch(ctx context.Context, links []models.QuickLink) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(links, 100).Error
}

// FindOwned loads a link only if it belongs to userID.
func (r *QuickLinkRepository) FindOwned(ctx context.Context, userID, id uint) (*models.QuickLink, error) {
	var l models.QuickLink
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&l).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *QuickLinkRepository) Save(ctx context.Context, l *models.QuickLink) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *QuickLinkRepository) DeleteOwned(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.QuickLink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *QuickLinkRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.QuickLink{}).Where("user_id = ?", userID).Count(&count).Error
}
