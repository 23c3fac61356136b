package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/honeynutbd/landing_shop/internal/events"
	"github.com/honeynutbd/landing_shop/internal/logging"
	"github.com/honeynutbd/landing_shop/internal/models"
	"github.com/honeynutbd/landing_shop/internal/repo"
	"github.com/honeynutbd/landing_shop/internal/search"
	"github.com/honeynutbd/landing_shop/internal/service/analytics"
	"github.com/honeynutbd/landing_shop/internal/service/dispatch"
	"github.com/honeynutbd/landing_shop/internal/service/settings"
)

type AdminHandler struct {
	Repo      *repo.GormRepo
	Settings  *settings.Service
	Dispatch  *dispatch.Coordinator
	Producer  *events.Producer
	ES        *elasticsearch.Client
	ESIndex   string
	UploadDir string
}

// orderView decorates an order with how many orders the same mobile number
// has placed overall.
type orderView struct {
	models.Order
	HistoryCount int64 `json:"history_count"`
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now().UTC()

	orders, err := h.Repo.ListOrders(ctx)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	views := make([]orderView, len(orders))
	for i, o := range orders {
		n, err := h.Repo.CountOrdersByMobile(ctx, o.MobileNumber)
		if err != nil {
			return errorResponse(c, http.StatusInternalServerError, err)
		}
		views[i] = orderView{Order: o, HistoryCount: n}
	}

	pending, err := h.Repo.CountOrdersByStatus(ctx, models.OrderStatusPending)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	completed, err := h.Repo.CountOrdersByStatus(ctx, models.OrderStatusCompleted)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	// one query over the widest window feeds every period; the aggregator
	// drops whatever falls outside a narrower one
	window := analytics.PeriodTwoMonth.Window()
	recentOrders, err := h.Repo.OrdersSince(ctx, now.Add(-window))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	trafficRows, err := h.Repo.TrafficSince(ctx, now.Add(-window))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	orderRecords := analytics.OrderRecords(recentOrders)
	trafficRecords := analytics.TrafficRecords(trafficRows)

	chartData := make(map[analytics.Period]*analytics.Series, len(analytics.Periods))
	trafficChartData := make(map[analytics.Period]*analytics.Series, len(analytics.Periods))
	for _, period := range analytics.Periods {
		s, err := analytics.Aggregate(period, now, orderRecords)
		if err != nil {
			return errorResponse(c, http.StatusInternalServerError, err)
		}
		chartData[period] = s

		ts, err := analytics.AggregateCounts(period, now, trafficRecords)
		if err != nil {
			return errorResponse(c, http.StatusInternalServerError, err)
		}
		trafficChartData[period] = ts
	}

	// the visitor summary covers the last 30 days only
	summaryCutoff := now.AddDate(0, 0, -30)
	var summaryRows []models.Traffic
	for _, t := range trafficRows {
		if !t.Timestamp.Before(summaryCutoff) {
			summaryRows = append(summaryRows, t)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"orders": views,
		"stats": echo.Map{
			"total":     len(orders),
			"pending":   pending,
			"completed": completed,
		},
		"chart_data":         chartData,
		"traffic_chart_data": trafficChartData,
		"traffic_stats":      analytics.Summarize(summaryRows),
	})
}

func (h *AdminHandler) CompleteOrder(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	if err := h.Repo.UpdateOrderStatus(ctx, uint(id), models.OrderStatusCompleted); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, events.TopicOrders, fmt.Sprint(id), map[string]interface{}{
		"type":     "order_completed",
		"order_id": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Order #%d marked as completed.", id)})
}

func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	if err := h.Repo.DeleteOrder(ctx, uint(id)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Order #%d deleted.", id)})
}

func (h *AdminHandler) SendCourier(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.send_courier", "order_id", id)

	order, err := h.Repo.GetOrder(ctx, uint(id))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	res, err := h.Dispatch.Dispatch(ctx, order)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrNotConfigured):
			return errorResponse(c, http.StatusBadRequest, err)
		default:
			l.Error("dispatch failed", "error", err)
			return errorResponse(c, http.StatusBadGateway, err)
		}
	}

	if res.AlreadySent {
		return c.JSON(http.StatusOK, echo.Map{
			"message":        fmt.Sprintf("Order already sent to courier (CID: %s)", res.ConsignmentID),
			"consignment_id": res.ConsignmentID,
			"status":         res.Status,
		})
	}

	l.Info("order dispatched", "consignment_id", res.ConsignmentID)
	return c.JSON(http.StatusOK, echo.Map{
		"message":        fmt.Sprintf("Successfully sent to courier! CID: %s", res.ConsignmentID),
		"consignment_id": res.ConsignmentID,
		"status":         res.Status,
	})
}

func (h *AdminHandler) CourierStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	order, err := h.Repo.GetOrder(ctx, uint(id))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	status, err := h.Dispatch.RefreshStatus(ctx, order)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrNotDispatched), errors.Is(err, dispatch.ErrNotConfigured):
			return errorResponse(c, http.StatusBadRequest, err)
		default:
			return errorResponse(c, http.StatusBadGateway, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"status": status})
}

func (h *AdminHandler) SearchOrders(c echo.Context) error {
	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	from := (page - 1) * size

	total, orders, err := search.Orders(c.Request().Context(), h.ES, h.ESIndex, q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "orders": orders})
}
