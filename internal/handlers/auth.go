package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/honeynutbd/landing_shop/internal/hash"
	"github.com/honeynutbd/landing_shop/internal/logging"
	"github.com/honeynutbd/landing_shop/internal/middleware"
	"github.com/honeynutbd/landing_shop/internal/repo"
)

const sessionTTL = 12 * time.Hour

type AuthHandler struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	admin, err := h.Repo.GetAdminByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login failed", "username", req.Username)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if !hash.CheckPassword(admin.PasswordHash, req.Password) {
		l.Warn("login failed", "username", req.Username)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	exp := time.Now().Add(sessionTTL)
	claims := jwt.MapClaims{
		"sub":      admin.ID,
		"username": admin.Username,
		"exp":      exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create session")
	}

	c.SetCookie(CreateCookie(middleware.AdminCookie, token, "/", exp))

	l.Info("admin logged in", "username", admin.Username)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged in"})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(middleware.AdminCookie, "", "/", expired))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
