// Package settings owns the shop-wide configuration row.
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/honeynutbd/landing_shop/internal/models"
	"github.com/honeynutbd/landing_shop/internal/repo"
)

type Service struct {
	Repo *repo.GormRepo

	now func() time.Time
}

func New(r *repo.GormRepo) *Service {
	return &Service{Repo: r, now: time.Now}
}

func defaultSettings() *models.ProductSetting {
	return &models.ProductSetting{
		ProductName:        "প্রিমিয়াম হানি নাট",
		ProductDescription: "খাটি মধু এবং বাছাইকৃত ড্রাই ফ্রুটসের এক অনন্য সংমিশ্রণ। যা আপনাকে দিবে দীর্ঘক্ষণ কাজ করার শক্তি এবং রোগ প্রতিরোধ ক্ষমতা।",
		Price:              990,
		OldPrice:           1200,
		ImagePath:          "honey_nut.png",
		ShopName:           "অর্গানিক দোকান",
		SupportPhone:       "01XXXXXXXXX",
		WhatsappNumber:     "01XXXXXXXXX",
		FacebookURL:        "#",
		LandingPageTheme:   "default",
		ThankYouPageTheme:  "default",
		ProductWeight:      "500",
		DiscountAmount:     100,
		DiscountAmount3:    200,
	}
}

// Get returns the settings row, seeding the defaults on first access.
func (s *Service) Get(ctx context.Context) (*models.ProductSetting, error) {
	cfg, err := s.Repo.GetSettings(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	return s.Repo.CreateSettingsIfMissing(ctx, defaultSettings())
}

type ProductUpdate struct {
	ProductName        string
	ProductDescription string
	Price              int64
	OldPrice           int64
	VideoURL           string
	ProductWeight      string
	DiscountAmount     int64
	DiscountAmount3    int64
	ImagePath          string
}

func (s *Service) UpdateProduct(ctx context.Context, upd ProductUpdate) (*models.ProductSetting, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	cfg.ProductName = upd.ProductName
	cfg.ProductDescription = upd.ProductDescription
	cfg.Price = upd.Price
	cfg.OldPrice = upd.OldPrice
	cfg.VideoURL = upd.VideoURL
	cfg.ProductWeight = upd.ProductWeight
	cfg.DiscountAmount = upd.DiscountAmount
	cfg.DiscountAmount3 = upd.DiscountAmount3
	if upd.ImagePath != "" {
		cfg.ImagePath = upd.ImagePath
	}
	cfg.UpdatedAt = s.now()

	if err := s.Repo.SaveSettings(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type ShopUpdate struct {
	ShopName          string
	GTMID             string
	PixelID           string
	SupportPhone      string
	WhatsappNumber    string
	FacebookURL       string
	CourierAPIKey     string
	CourierSecretKey  string
	LandingPageTheme  string
	ThankYouPageTheme string
	CustomHeadScript  string
	CustomBodyScript  string
	LogoPath          string
}

func (s *Service) UpdateShop(ctx context.Context, upd ShopUpdate) (*models.ProductSetting, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	cfg.ShopName = upd.ShopName
	cfg.GTMID = upd.GTMID
	cfg.PixelID = upd.PixelID
	cfg.SupportPhone = upd.SupportPhone
	cfg.WhatsappNumber = upd.WhatsappNumber
	cfg.FacebookURL = upd.FacebookURL
	cfg.CourierAPIKey = upd.CourierAPIKey
	cfg.CourierSecretKey = upd.CourierSecretKey
	cfg.LandingPageTheme = upd.LandingPageTheme
	cfg.ThankYouPageTheme = upd.ThankYouPageTheme
	cfg.CustomHeadScript = upd.CustomHeadScript
	cfg.CustomBodyScript = upd.CustomBodyScript
	if upd.LogoPath != "" {
		cfg.LogoPath = upd.LogoPath
	}
	cfg.UpdatedAt = s.now()

	if err := s.Repo.SaveSettings(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CourierCreds returns the configured courier API keys; both strings are
// empty until the admin fills them in.
func (s *Service) CourierCreds(ctx context.Context) (apiKey, secretKey string, err error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return "", "", err
	}
	return cfg.CourierAPIKey, cfg.CourierSecretKey, nil
}
