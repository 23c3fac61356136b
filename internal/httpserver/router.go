package httpserver

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/honeynutbd/landing_shop/internal/handlers"
	"github.com/honeynutbd/landing_shop/internal/middleware"
)

type Deps struct {
	Storefront *handlers.StorefrontHandler
	Auth       *handlers.AuthHandler
	Admin      *handlers.AdminHandler
	Cron       *handlers.CronHandler
	JWTSecret  []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health", handlers.Health)

	e.GET("/", d.Storefront.Index)
	e.GET("/thank-you", d.Storefront.ThankYou)
	e.POST("/order", d.Storefront.PlaceOrder, middleware.RateLimit(rate.Limit(1), 5))

	e.POST("/admin/login", d.Auth.Login)
	e.POST("/admin/logout", d.Auth.Logout)

	admin := e.Group("/admin", middleware.AdminOnly(d.JWTSecret))

	admin.GET("", d.Admin.Dashboard)
	admin.GET("/settings", d.Admin.GetSettings)
	admin.POST("/product-settings", d.Admin.UpdateProductSettings)
	admin.POST("/shop-settings", d.Admin.UpdateShopSettings)

	admin.GET("/reviews", d.Admin.ListReviews)
	admin.POST("/reviews", d.Admin.CreateReview)
	admin.POST("/reviews/edit/:id", d.Admin.UpdateReview)
	admin.POST("/reviews/delete/:id", d.Admin.DeleteReview)

	admin.POST("/order/complete/:id", d.Admin.CompleteOrder)
	admin.POST("/order/delete/:id", d.Admin.DeleteOrder)
	admin.POST("/order/courier-send/:id", d.Admin.SendCourier)
	admin.GET("/order/courier-status/:id", d.Admin.CourierStatus)
	admin.GET("/orders/search", d.Admin.SearchOrders)

	e.GET("/cron/courier-status", d.Cron.UpdateCourierStatuses)
}
