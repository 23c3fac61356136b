package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/honeynutbd/landing_shop/internal/models"
	"github.com/honeynutbd/landing_shop/internal/repo"
)

func (h *AdminHandler) ListReviews(c echo.Context) error {
	reviews, err := h.Repo.ListReviews(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *AdminHandler) CreateReview(c echo.Context) error {
	rating, _ := strconv.Atoi(c.FormValue("rating"))
	if rating < 1 || rating > 5 {
		rating = 5
	}

	imagePath, err := saveUpload(c, h.UploadDir, "image", "rev")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	profilePicPath, err := saveUpload(c, h.UploadDir, "profile_pic", "pfp")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	review := &models.Review{
		CustomerName:   c.FormValue("customer_name"),
		Rating:         rating,
		Comment:        c.FormValue("comment"),
		ImagePath:      imagePath,
		ProfilePicPath: profilePicPath,
		Timestamp:      time.Now().UTC(),
	}

	if err := h.Repo.CreateReview(c.Request().Context(), review); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *AdminHandler) UpdateReview(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	review, err := h.Repo.GetReview(ctx, uint(id))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	if rating, err := strconv.Atoi(c.FormValue("rating")); err == nil && rating >= 1 && rating <= 5 {
		review.Rating = rating
	}
	if name := c.FormValue("customer_name"); name != "" {
		review.CustomerName = name
	}
	review.Comment = c.FormValue("comment")

	if path, err := saveUpload(c, h.UploadDir, "image", "rev"); err == nil && path != "" {
		review.ImagePath = path
	}
	if path, err := saveUpload(c, h.UploadDir, "profile_pic", "pfp"); err == nil && path != "" {
		review.ProfilePicPath = path
	}

	if err := h.Repo.SaveReview(ctx, review); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, review)
}

func (h *AdminHandler) DeleteReview(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := h.Repo.DeleteReview(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Review deleted!"})
}
