package handlers

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/honeynutbd/landing_shop/internal/events"
	"github.com/honeynutbd/landing_shop/internal/logging"
	"github.com/honeynutbd/landing_shop/internal/models"
	"github.com/honeynutbd/landing_shop/internal/repo"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: err.Error(),
	})
}

func CreateCookie(name string, value string, path string, expTime time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// flashRedirect bounces the visitor back to the landing page checkout with
// a localized message in the query string.
func flashRedirect(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/?error="+url.QueryEscape(msg)+"#checkout")
}

// trackTraffic records a page view. Failures are logged and swallowed:
// tracking must never block the primary action.
func trackTraffic(c echo.Context, r *repo.GormRepo, producer *events.Producer, path string) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	t := &models.Traffic{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		Referrer:  c.Request().Referer(),
		Path:      path,
		Timestamp: time.Now().UTC(),
	}
	if err := r.CreateTraffic(ctx, t); err != nil {
		l.Warn("traffic tracking failed", "path", path, "error", err)
	}

	publish(c, producer, events.TopicTraffic, path, map[string]interface{}{
		"type": "page_view",
		"path": path,
		"ip":   t.IPAddress,
	})
}

func publish(c echo.Context, producer *events.Producer, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event publish failed", "topic", topic, "error", err)
	}
}

// saveUpload stores a multipart file under dir with a random name and
// returns its public path. A missing file field is not an error.
func saveUpload(c echo.Context, dir, field, prefix string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := prefix + "_" + uuid.NewString() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "uploads/" + name, nil
}
