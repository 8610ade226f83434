package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/service"
)

// SearchHandler handles image search endpoints.
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchImages godoc
// @Summary Search images by keyword
// @Description Matches descriptions and tag names; order by date (d, -d) or average rating (r, -r)
// @Tags search
// @Produce json
// @Param search_tag query string false "Keyword"
// @Param filter_type query string false "Ordering: d, -d, r, -r" default(d)
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {array} service.SearchResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /search [get]
func (h *SearchHandler) SearchImages(c echo.Context) error {
	order := c.QueryParam("filter_type")
	if order == "" {
		order = service.OrderDateDesc
	}
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 10)

	results, err := h.searchService.SearchImages(c.Request().Context(), c.QueryParam("search_tag"), order, skip, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, results)
}

// SearchUserImages godoc
// @Summary List a user's images, date ordered
// @Tags search
// @Produce json
// @Param user_id path int true "User ID"
// @Param filter_type query string false "Ordering: d, -d" default(d)
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {array} model.Image
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /search/image/{user_id} [get]
func (h *SearchHandler) SearchUserImages(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	order := c.QueryParam("filter_type")
	if order == "" {
		order = service.OrderDateDesc
	}
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 10)

	images, err := h.searchService.SearchUserImages(c.Request().Context(), userID, order, skip, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, images)
}
