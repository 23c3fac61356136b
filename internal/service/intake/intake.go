// Package intake validates and persists incoming order submissions.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/honeynutbd/landing_shop/internal/bdmobile"
	"github.com/honeynutbd/landing_shop/internal/models"
	"github.com/honeynutbd/landing_shop/internal/repo"
	"github.com/honeynutbd/landing_shop/internal/service/settings"
)

var (
	ErrValidation    = errors.New("validation")
	ErrMissingField  = fmt.Errorf("%w: missing field", ErrValidation)
	ErrInvalidMobile = fmt.Errorf("%w: invalid mobile", ErrValidation)
	ErrThrottled     = errors.New("throttled")
)

// ThrottleWindow is the minimum gap between two orders from one mobile
// number. The check reads the latest order row; there is no separate
// counter and concurrent submissions racing the window are accepted.
const ThrottleWindow = 5 * time.Minute

type Request struct {
	FullName  string
	Address   string
	Mobile    string
	Quantity  int
	ProductID uint
}

type Service struct {
	Repo     *repo.GormRepo
	Settings *settings.Service

	now func() time.Time
}

func New(r *repo.GormRepo, s *settings.Service) *Service {
	return &Service{Repo: r, Settings: s, now: time.Now}
}

func (s *Service) PlaceOrder(ctx context.Context, req Request) (*models.Order, error) {
	fullName := strings.TrimSpace(req.FullName)
	address := strings.TrimSpace(req.Address)
	mobile := bdmobile.Normalize(req.Mobile)

	if fullName == "" || address == "" || mobile == "" {
		return nil, ErrMissingField
	}
	if !bdmobile.IsValid(mobile) {
		return nil, ErrInvalidMobile
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	now := s.now()

	last, err := s.Repo.LatestOrderByMobile(ctx, mobile)
	switch {
	case err == nil:
		if now.Sub(last.Timestamp) < ThrottleWindow {
			return nil, fmt.Errorf("%w: repeat order within %s", ErrThrottled, ThrottleWindow)
		}
	case errors.Is(err, repo.ErrNotFound):
		// first order from this number
	default:
		return nil, err
	}

	order := &models.Order{
		FullName:        fullName,
		ShippingAddress: address,
		MobileNumber:    mobile,
		Quantity:        quantity,
		Status:          models.OrderStatusPending,
		Timestamp:       now,
	}

	if err := s.price(ctx, order, req.ProductID, quantity); err != nil {
		return nil, err
	}

	return s.Repo.CreateOrder(ctx, order)
}

// price resolves the unit price from the catalog product when one is
// referenced, falling back to the singleton settings row. A resolved
// product also leaves an immutable line-item snapshot on the order.
func (s *Service) price(ctx context.Context, order *models.Order, productID uint, quantity int) error {
	if productID != 0 {
		product, err := s.Repo.GetProduct(ctx, productID)
		if err == nil {
			order.TotalPrice = product.Price * int64(quantity)
			order.Items = []models.OrderItem{{
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    quantity,
			}}
			return nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
	}

	cfg, err := s.Settings.Get(ctx)
	if err != nil {
		return err
	}
	order.TotalPrice = cfg.Price * int64(quantity)
	return nil
}
