package repo

import (
	"context"

	"github.com/honeynutbd/landing_shop/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &product, nil
}
