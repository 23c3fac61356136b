package repo

import (
	"context"

	"github.com/honeynutbd/landing_shop/internal/models"
)

func (r *GormRepo) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &admin, nil
}

// EnsureAdmin creates the admin account if the username is not taken yet.
// An existing account keeps its stored hash so boot never resets passwords.
func (r *GormRepo) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	admin := models.Admin{Username: username, PasswordHash: passwordHash}
	return r.DB.WithContext(ctx).
		Where("username = ?", username).
		FirstOrCreate(&admin).Error
}
