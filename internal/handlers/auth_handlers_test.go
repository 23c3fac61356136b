package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/honeynutbd/landing_shop/internal/hash"
	"github.com/honeynutbd/landing_shop/internal/middleware"
	"github.com/honeynutbd/landing_shop/internal/models"
	"github.com/honeynutbd/landing_shop/internal/repo"
)

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
		return nil
	}

	err = db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Traffic{},
		&models.ProductSetting{},
		&models.Review{},
		&models.Admin{},
	)
	if err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, username, password string) {
	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Admin{Username: username, PasswordHash: pwHash}).Error)
}

func TestLogin(t *testing.T) {
	db := InitTestDB(t)
	seedAdmin(t, db, "admin", "password")

	handler := AuthHandler{
		Repo:      &repo.GormRepo{DB: db},
		JWTSecret: []byte("test-secret"),
	}

	load := map[string]string{
		"username": "admin",
		"password": "password",
	}
	e := echo.New()
	bodyBytes, _ := json.Marshal(load)
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(bodyBytes))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.AdminCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "expected session cookie")
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)

	invalid_load := map[string]string{
		"username": "admin",
		"password": "invalid_password",
	}
	badBodyBytes, _ := json.Marshal(invalid_load)
	req_invalid := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(badBodyBytes))
	req_invalid.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec_invalid := httptest.NewRecorder()
	c_invalid := e.NewContext(req_invalid, rec_invalid)

	err := handler.Login(c_invalid)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	db := InitTestDB(t)

	handler := AuthHandler{
		Repo:      &repo.GormRepo{DB: db},
		JWTSecret: []byte("test-secret"),
	}

	e := echo.New()
	bodyBytes, _ := json.Marshal(map[string]string{"username": "nobody", "password": "x"})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(bodyBytes))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLogout(t *testing.T) {
	handler := AuthHandler{JWTSecret: []byte("test-secret")}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "logged out", resp["message"])

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, middleware.AdminCookie, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
}

func TestAdminOnlySession(t *testing.T) {
	db := InitTestDB(t)
	seedAdmin(t, db, "admin", "password")

	secret := []byte("test-secret")
	handler := AuthHandler{
		Repo:      &repo.GormRepo{DB: db},
		JWTSecret: secret,
	}

	e := echo.New()
	bodyBytes, _ := json.Marshal(map[string]string{"username": "admin", "password": "password"})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(bodyBytes))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.Login(e.NewContext(req, rec)))

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.AdminCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)

	protected := middleware.AdminOnly(secret)(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("admin_username").(string))
	})

	// valid cookie passes and exposes the admin identity
	req_ok := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req_ok.AddCookie(cookie)
	rec_ok := httptest.NewRecorder()
	require.NoError(t, protected(e.NewContext(req_ok, rec_ok)))
	require.Equal(t, http.StatusOK, rec_ok.Code)
	require.Equal(t, "admin", rec_ok.Body.String())

	// no cookie
	req_none := httptest.NewRequest(http.MethodGet, "/admin", nil)
	err := protected(e.NewContext(req_none, httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)

	// wrong signing key
	req_bad := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req_bad.AddCookie(&http.Cookie{Name: middleware.AdminCookie, Value: "not-a-token"})
	err = protected(e.NewContext(req_bad, httptest.NewRecorder()))
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
