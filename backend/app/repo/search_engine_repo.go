package repo

import (
	"context"
	"errors"

	"jiansou/backend/app/models"

	"gorm.io/gorm"
)

type SearchEngineRepository struct{ db *gorm.DB }

func NewSearchEngineRepository(db *gorm.DB) *SearchEngineRepository {
	return &SearchEngineRepository{db: db}
}

func (r *SearchEngineRepository) WithTx(tx *gorm.DB) *SearchEngineRepository {
	return &SearchEngineRepository{db: tx}
}

func (r *SearchEngineRepository) ListByUser(ctx context.Context, userID uint, activeOnly bool) ([]models.SearchEngine, error) {
	var engines []models.SearchEngine
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("sort_order ASC").Order("id ASC").Find(&engines).Error
	return engines, err
}

func (r *SearchEngineRepository) Create(ctx context.Context, e *models.SearchEngine) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *SearchEngineRepository) CreateBatch(ctx context.Context, engines []models.SearchEngine) error {
	if len(engines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(engines, 100).Error
}

func (r *SearchEngineRepository) FindOwned(ctx context.Context, userID, id uint) (*models.SearchEngine, error) {
	var e models.SearchEngine
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *SearchEngineRepository) FindByName(ctx context.Context, userID uint, name string) (*models.SearchEngine, error) {
	var e models.SearchEngine
	if err := r.db.WithContext(ctx).Where("name = ? AND user_id = ?", name, userID).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *SearchEngineRepository) CountByName(ctx context.Context, userID uint, name string) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.SearchEngine{}).Where("name = ? AND user_id = ?", name, userID).Count(&count).Error
}

// FindDefault returns the user's default engine, else the first active one
// by sort order.
func (r *SearchEngineRepository) FindDefault(ctx context.Context, userID uint) (*models.SearchEngine, error) {
	var e models.SearchEngine
	err := r.db.WithContext(ctx).Where("user_id = ? AND is_default = ?", userID, true).Order("id ASC").First(&e).Error
	if err == nil {
		return &e, nil
	}
	if err = translate(err); !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	err = r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true).Order("sort_order ASC").Order("id ASC").First(&e).Error
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// ClearDefault unsets the default flag on every engine owned by userID.
func (r *SearchEngineRepository) ClearDefault(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&models.SearchEngine{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

func (r *SearchEngineRepository) CountDefault(ctx context.Context, userID uint) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.SearchEngine{}).Where("user_id = ? AND is_default = ?", userID, true).Count(&count).Error
}

func (r *SearchEngineRepository) Save(ctx context.Context, e *models.SearchEngine) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *SearchEngineRepository) DeleteOwned(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.SearchEngine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SearchEngineRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.SearchEngine{}).Where("user_id = ?", userID).Count(&count).Error
}
