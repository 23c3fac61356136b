package settings

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/honeynutbd/landing_shop/internal/models"
	"github.com/honeynutbd/landing_shop/internal/repo"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProductSetting{}))
	return New(&repo.GormRepo{DB: db}), db
}

func TestGetSeedsDefaults(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, uint(1), cfg.ID)
	require.Equal(t, "প্রিমিয়াম হানি নাট", cfg.ProductName)
	require.Equal(t, int64(990), cfg.Price)

	// a second Get must not create a second row
	_, err = svc.Get(ctx)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&models.ProductSetting{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	cfg, err := svc.UpdateProduct(ctx, ProductUpdate{
		ProductName:        "নতুন নাম",
		ProductDescription: "বর্ণনা",
		Price:              1090,
		OldPrice:           1300,
		ProductWeight:      "750",
		DiscountAmount:     150,
		DiscountAmount3:    250,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1090), cfg.Price)
	require.Equal(t, stamp, cfg.UpdatedAt)

	// empty image keeps the previous path
	require.Equal(t, "honey_nut.png", cfg.ImagePath)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "নতুন নাম", got.ProductName)
}

func TestCourierCreds(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	key, secret, err := svc.CourierCreds(ctx)
	require.NoError(t, err)
	require.Empty(t, key)
	require.Empty(t, secret)

	_, err = svc.UpdateShop(ctx, ShopUpdate{CourierAPIKey: "k", CourierSecretKey: "s"})
	require.NoError(t, err)

	key, secret, err = svc.CourierCreds(ctx)
	require.NoError(t, err)
	require.Equal(t, "k", key)
	require.Equal(t, "s", secret)
}
