package repo

import (
	"context"
	"time"

	"github.com/honeynutbd/landing_shop/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Order("timestamp DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// LatestOrderByMobile returns the most recent order placed with the given
// normalized mobile number, or ErrNotFound if there is none.
func (r *GormRepo) LatestOrderByMobile(ctx context.Context, mobile string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Where("mobile_number = ?", mobile).
		Order("timestamp DESC").
		First(&order).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &order, nil
}

func (r *GormRepo) CountOrdersByMobile(ctx context.Context, mobile string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("mobile_number = ?", mobile).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountOrdersByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *GormRepo) OrdersSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("timestamp >= ?", since).
		Order("timestamp ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClaimConsignment records the courier consignment for an order, but only
// if no consignment has been recorded yet. Returns false when another
// dispatch already claimed the order; the check and set are a single
// conditional UPDATE, so two concurrent dispatches cannot both win.
func (r *GormRepo) ClaimConsignment(ctx context.Context, orderID uint, cid, status string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND (consignment_id IS NULL OR consignment_id = '')", orderID).
		Updates(map[string]interface{}{
			"consignment_id": cid,
			"courier_status": status,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) UpdateCourierStatus(ctx context.Context, orderID uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).Update("courier_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveConsignments lists dispatched orders whose last known courier
// status is not terminal (delivered/cancelled, case-insensitively).
func (r *GormRepo) ActiveConsignments(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("consignment_id IS NOT NULL AND consignment_id <> ''").
		Where("courier_status IS NULL OR LOWER(courier_status) NOT IN ?", []string{"delivered", "cancelled"}).
		Order("timestamp ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
