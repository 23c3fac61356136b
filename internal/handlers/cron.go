package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/honeynutbd/landing_shop/internal/logging"
	"github.com/honeynutbd/landing_shop/internal/service/dispatch"
)

// CronHandler exposes the operator-triggered bulk status refresh. There is
// no in-process scheduler; an external cron hits this endpoint.
type CronHandler struct {
	Dispatch *dispatch.Coordinator
	Key      string
}

func (h *CronHandler) UpdateCourierStatuses(c echo.Context) error {
	if h.Key == "" || c.QueryParam("key") != h.Key {
		return c.String(http.StatusUnauthorized, "Unauthorized")
	}

	ctx := c.Request().Context()
	processed, updated, err := h.Dispatch.BulkRefresh(ctx)
	if err != nil {
		if errors.Is(err, dispatch.ErrNotConfigured) {
			return c.String(http.StatusBadRequest, "API not configured")
		}
		logging.FromContext(ctx).Error("bulk refresh failed", "error", err)
		return c.String(http.StatusInternalServerError, "bulk refresh failed")
	}

	return c.String(http.StatusOK, fmt.Sprintf("Processed %d orders, Updated %d.", processed, updated))
}
