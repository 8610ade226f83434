package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/service"
)

// TagHandler handles tag CRUD endpoints.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagRequest carries a tag name.
type TagRequest struct {
	Name string `json:"name" validate:"required,max=25"`
}

// ListTags godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {array} model.Tag
// @Security BearerAuth
// @Router /tags [get]
func (h *TagHandler) ListTags(c echo.Context) error {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)
	tags, err := h.tagService.ListTags(c.Request().Context(), skip, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// GetTag godoc
// @Summary Tag by ID
// @Tags tags
// @Produce json
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} model.Tag
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags/{tag_id} [get]
func (h *TagHandler) GetTag(c echo.Context) error {
	id, err := pathID(c, "tag_id")
	if err != nil {
		return err
	}
	tag, err := h.tagService.GetTag(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tag)
}

// CreateTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body TagRequest true "Tag name"
// @Success 201 {object} model.Tag
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags [post]
func (h *TagHandler) CreateTag(c echo.Context) error {
	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.CreateTag(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, tag)
}

// UpdateTag godoc
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param tag_id path int true "Tag ID"
// @Param request body TagRequest true "New name"
// @Success 200 {object} model.Tag
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags/{tag_id} [put]
func (h *TagHandler) UpdateTag(c echo.Context) error {
	id, err := pathID(c, "tag_id")
	if err != nil {
		return err
	}
	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.UpdateTag(c.Request().Context(), id, req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} model.Tag
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags/{tag_id} [delete]
func (h *TagHandler) DeleteTag(c echo.Context) error {
	id, err := pathID(c, "tag_id")
	if err != nil {
		return err
	}
	tag, err := h.tagService.DeleteTag(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tag)
}
