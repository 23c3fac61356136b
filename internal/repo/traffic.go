package repo

import (
	"context"
	"time"

	"github.com/honeynutbd/landing_shop/internal/models"
)

func (r *GormRepo) CreateTraffic(ctx context.Context, t *models.Traffic) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) TrafficSince(ctx context.Context, since time.Time) ([]models.Traffic, error) {
	var rows []models.Traffic
	err := r.DB.WithContext(ctx).
		Where("timestamp >= ?", since).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
