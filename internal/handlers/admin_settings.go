package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/honeynutbd/landing_shop/internal/service/settings"
)

func (h *AdminHandler) GetSettings(c echo.Context) error {
	cfg, err := h.Settings.Get(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *AdminHandler) UpdateProductSettings(c echo.Context) error {
	price, _ := strconv.ParseInt(c.FormValue("price"), 10, 64)
	oldPrice, _ := strconv.ParseInt(c.FormValue("old_price"), 10, 64)
	discount, _ := strconv.ParseInt(c.FormValue("discount_amount"), 10, 64)
	discount3, _ := strconv.ParseInt(c.FormValue("discount_amount_3"), 10, 64)

	imagePath, err := saveUpload(c, h.UploadDir, "image", "prod")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	upd := settings.ProductUpdate{
		ProductName:        c.FormValue("product_name"),
		ProductDescription: c.FormValue("product_description"),
		Price:              price,
		OldPrice:           oldPrice,
		VideoURL:           c.FormValue("video_url"),
		ProductWeight:      c.FormValue("product_weight"),
		DiscountAmount:     discount,
		DiscountAmount3:    discount3,
		ImagePath:          imagePath,
	}

	cfg, err := h.Settings.UpdateProduct(c.Request().Context(), upd)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Product settings updated!",
		"settings": cfg,
	})
}

func (h *AdminHandler) UpdateShopSettings(c echo.Context) error {
	logoPath, err := saveUpload(c, h.UploadDir, "logo", "logo")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	upd := settings.ShopUpdate{
		ShopName:          c.FormValue("shop_name"),
		GTMID:             c.FormValue("gtm_id"),
		PixelID:           c.FormValue("pixel_id"),
		SupportPhone:      c.FormValue("support_phone"),
		WhatsappNumber:    c.FormValue("whatsapp_number"),
		FacebookURL:       c.FormValue("facebook_url"),
		CourierAPIKey:     c.FormValue("courier_api_key"),
		CourierSecretKey:  c.FormValue("courier_secret_key"),
		LandingPageTheme:  c.FormValue("landing_page_theme"),
		ThankYouPageTheme: c.FormValue("thank_you_page_theme"),
		CustomHeadScript:  c.FormValue("custom_head_script"),
		CustomBodyScript:  c.FormValue("custom_body_script"),
		LogoPath:          logoPath,
	}

	cfg, err := h.Settings.UpdateShop(c.Request().Context(), upd)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Shop settings updated!",
		"settings": cfg,
	})
}
