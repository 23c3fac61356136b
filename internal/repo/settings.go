package repo

import (
	"context"

	"github.com/honeynutbd/landing_shop/internal/models"
)

func (r *GormRepo) GetSettings(ctx context.Context) (*models.ProductSetting, error) {
	var s models.ProductSetting
	if err := r.DB.WithContext(ctx).First(&s).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &s, nil
}

// CreateSettingsIfMissing seeds the singleton settings row. The fixed
// primary key makes a second seed a no-op instead of a second row.
func (r *GormRepo) CreateSettingsIfMissing(ctx context.Context, seed *models.ProductSetting) (*models.ProductSetting, error) {
	seed.ID = 1
	err := r.DB.WithContext(ctx).
		Where("id = ?", seed.ID).
		FirstOrCreate(seed).Error
	if err != nil {
		return nil, err
	}
	return seed, nil
}

func (r *GormRepo) SaveSettings(ctx context.Context, s *models.ProductSetting) error {
	return r.DB.WithContext(ctx).Save(s).Error
}
