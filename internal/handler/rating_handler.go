package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/middleware"
	"photoshare/internal/service"
)

// RatingHandler handles star-rating endpoints.
type RatingHandler struct {
	ratingService service.RatingService
}

// NewRatingHandler creates a new rating handler.
func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RatingRequest carries the five star flags; exactly one should be set.
type RatingRequest struct {
	OneStar    bool `json:"one_star"`
	TwoStars   bool `json:"two_stars"`
	ThreeStars bool `json:"three_stars"`
	FourStars  bool `json:"four_stars"`
	FiveStars  bool `json:"five_stars"`
}

func (r RatingRequest) selection() service.StarSelection {
	return service.StarSelection{
		OneStar:    r.OneStar,
		TwoStars:   r.TwoStars,
		ThreeStars: r.ThreeStars,
		FourStars:  r.FourStars,
		FiveStars:  r.FiveStars,
	}
}

// ImageRating godoc
// @Summary Average rating of an image
// @Tags ratings
// @Produce json
// @Param image_id path int true "Image ID"
// @Success 200 {number} float64
// @Security BearerAuth
// @Router /ratings/image/{image_id} [get]
func (h *RatingHandler) ImageRating(c echo.Context) error {
	imageID, err := pathID(c, "image_id")
	if err != nil {
		return err
	}
	rating, err := h.ratingService.ImageRating(c.Request().Context(), imageID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rating)
}

// GetRating godoc
// @Summary Rating by ID
// @Tags ratings
// @Produce json
// @Param rating_id path int true "Rating ID"
// @Success 200 {object} model.Rating
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /ratings/{rating_id} [get]
func (h *RatingHandler) GetRating(c echo.Context) error {
	id, err := pathID(c, "rating_id")
	if err != nil {
		return err
	}
	rating, err := h.ratingService.GetRating(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rating)
}

// CreateRating godoc
// @Summary Rate an image
// @Tags ratings
// @Accept json
// @Produce json
// @Param image_id path int true "Image ID"
// @Param request body RatingRequest true "Star selection"
// @Success 201 {object} model.Rating
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /ratings/{image_id} [post]
func (h *RatingHandler) CreateRating(c echo.Context) error {
	imageID, err := pathID(c, "image_id")
	if err != nil {
		return err
	}
	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	rating, err := h.ratingService.CreateRating(c.Request().Context(), imageID, middleware.Principal(c).ID, req.selection())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rating)
}

// UpdateRating godoc
// @Summary Update a rating
// @Tags ratings
// @Accept json
// @Produce json
// @Param rating_id path int true "Rating ID"
// @Param request body RatingRequest true "Star selection"
// @Success 200 {object} model.Rating
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /ratings/{rating_id} [put]
func (h *RatingHandler) UpdateRating(c echo.Context) error {
	id, err := pathID(c, "rating_id")
	if err != nil {
		return err
	}
	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	rating, err := h.ratingService.UpdateRating(c.Request().Context(), id, req.selection())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rating)
}

// DeleteRating godoc
// @Summary Delete a rating
// @Tags ratings
// @Produce json
// @Param rating_id path int true "Rating ID"
// @Success 200 {object} model.Rating
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /ratings/{rating_id} [delete]
func (h *RatingHandler) DeleteRating(c echo.Context) error {
	id, err := pathID(c, "rating_id")
	if err != nil {
		return err
	}
	rating, err := h.ratingService.DeleteRating(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rating)
}
