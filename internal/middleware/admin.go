package middleware

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AdminCookie carries the signed admin session token.
const AdminCookie = "adminToken"

// AdminOnly rejects requests without a valid admin session cookie and puts
// the admin id and username on the echo context.
func AdminOnly(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AdminCookie)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "admin login required")
			}

			token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}
			if sub, ok := claims["sub"].(float64); ok {
				c.Set("admin_id", uint(sub))
			}
			if username, ok := claims["username"].(string); ok {
				c.Set("admin_username", username)
			}
			return next(c)
		}
	}
}
