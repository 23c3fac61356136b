package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/honeynutbd/landing_shop/internal/events"
	"github.com/honeynutbd/landing_shop/internal/logging"
	"github.com/honeynutbd/landing_shop/internal/repo"
	"github.com/honeynutbd/landing_shop/internal/search"
	"github.com/honeynutbd/landing_shop/internal/service/intake"
	"github.com/honeynutbd/landing_shop/internal/service/settings"
)

// Localized messages shown to the visitor after a failed submission.
const (
	msgMissingFields = "সবগুলো ঘর পূরণ করুন।"
	msgInvalidMobile = "সঠিক বাংলাদেশি মোবাইল নম্বর দিন (১১ ডিজিট)।"
	msgThrottled     = "আপনি সম্প্রতি একটি অর্ডার করেছেন। দয়া করে কিছুক্ষণ অপেক্ষা করুন।"
	msgOrderFailed   = "দুঃখিত, অর্ডারটি সম্পন্ন করা যায়নি। আবার চেষ্টা করুন।"
)

type StorefrontHandler struct {
	Repo     *repo.GormRepo
	Settings *settings.Service
	Intake   *intake.Service
	Producer *events.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func (h *StorefrontHandler) Index(c echo.Context) error {
	trackTraffic(c, h.Repo, h.Producer, "/")
	ctx := c.Request().Context()

	cfg, err := h.Settings.Get(ctx)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	reviews, err := h.Repo.ListReviews(ctx)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"settings": cfg,
		"reviews":  reviews,
		"theme":    cfg.LandingPageTheme,
	})
}

func (h *StorefrontHandler) ThankYou(c echo.Context) error {
	trackTraffic(c, h.Repo, h.Producer, "/thank-you")
	ctx := c.Request().Context()

	cfg, err := h.Settings.Get(ctx)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	resp := echo.Map{
		"settings": cfg,
		"theme":    cfg.ThankYouPageTheme,
	}

	if idParam := c.QueryParam("order_id"); idParam != "" {
		if id, err := strconv.ParseUint(idParam, 10, 32); err == nil {
			if order, err := h.Repo.GetOrder(ctx, uint(id)); err == nil {
				resp["order"] = order
			}
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *StorefrontHandler) PlaceOrder(c echo.Context) error {
	trackTraffic(c, h.Repo, h.Producer, "/order")
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.place_order")

	quantity, _ := strconv.Atoi(c.FormValue("quantity"))
	productID, _ := strconv.ParseUint(c.FormValue("product_id"), 10, 32)

	req := intake.Request{
		FullName:  c.FormValue("full_name"),
		Address:   c.FormValue("address"),
		Mobile:    c.FormValue("mobile"),
		Quantity:  quantity,
		ProductID: uint(productID),
	}

	order, err := h.Intake.PlaceOrder(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrThrottled):
			l.Warn("order throttled", "error", err)
			return flashRedirect(c, msgThrottled)
		case errors.Is(err, intake.ErrInvalidMobile):
			l.Warn("order rejected", "error", err)
			return flashRedirect(c, msgInvalidMobile)
		case errors.Is(err, intake.ErrValidation):
			l.Warn("order rejected", "error", err)
			return flashRedirect(c, msgMissingFields)
		default:
			l.Error("order failed", "error", err)
			return flashRedirect(c, msgOrderFailed)
		}
	}

	publish(c, h.Producer, events.TopicOrders, fmt.Sprint(order.ID), map[string]interface{}{
		"type":        "order_placed",
		"order_id":    order.ID,
		"total_price": order.TotalPrice,
		"quantity":    order.Quantity,
	})

	if h.ES != nil {
		if err := search.IndexOrder(ctx, h.ES, h.ESIndex, order); err != nil {
			l.Warn("order indexing failed", "order_id", order.ID, "error", err)
		}
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/thank-you?order_id=%d", order.ID))
}

func Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
