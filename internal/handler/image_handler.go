package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/middleware"
	"photoshare/internal/model"
	"photoshare/internal/service"
)

// ImageHandler handles image metadata endpoints. Binary upload and
// transformation live in the external storage collaborator; these endpoints
// work with the resulting URL.
type ImageHandler struct {
	imageService service.ImageService
}

// NewImageHandler creates a new image handler.
func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// AddImageRequest registers an uploaded image.
type AddImageRequest struct {
	URL         string   `json:"url" validate:"required,url"`
	PublicName  string   `json:"public_name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=1024"`
	Tags        []string `json:"tags"`
}

// UpdateImageRequest changes an image's description.
type UpdateImageRequest struct {
	Description string `json:"description" validate:"max=1024"`
}

// UpdateTagsRequest replaces an image's tags.
type UpdateTagsRequest struct {
	Tags []string `json:"tags" validate:"required"`
}

// ImageResponse wraps an image with the tag-cap warning, when any.
type ImageResponse struct {
	Image  *model.Image `json:"image"`
	Detail string       `json:"detail,omitempty"`
}

// AddImage godoc
// @Summary Register an uploaded image
// @Tags images
// @Accept json
// @Produce json
// @Param request body AddImageRequest true "Image metadata"
// @Success 201 {object} ImageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /images [post]
func (h *ImageHandler) AddImage(c echo.Context) error {
	var req AddImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, detail, err := h.imageService.AddImage(c.Request().Context(), middleware.Principal(c), req.Description, req.URL, req.PublicName, req.Tags)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, ImageResponse{Image: image, Detail: detail})
}

// GetImage godoc
// @Summary Image with its average rating and comments
// @Tags images
// @Produce json
// @Param id path int true "Image ID"
// @Success 200 {object} service.ImageView
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /images/{id} [get]
func (h *ImageHandler) GetImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.imageService.GetImage(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// ListImages godoc
// @Summary All images with aggregates
// @Tags images
// @Produce json
// @Success 200 {array} service.ImageView
// @Security BearerAuth
// @Router /images [get]
func (h *ImageHandler) ListImages(c echo.Context) error {
	views, err := h.imageService.ListImages(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// ListUserImages godoc
// @Summary One user's images
// @Tags images
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} service.ImageView
// @Security BearerAuth
// @Router /images/user/{user_id} [get]
func (h *ImageHandler) ListUserImages(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	views, err := h.imageService.ListUserImages(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// UpdateImage godoc
// @Summary Update an image's description
// @Tags images
// @Accept json
// @Produce json
// @Param id path int true "Image ID"
// @Param request body UpdateImageRequest true "New description"
// @Success 200 {object} model.Image
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /images/{id} [put]
func (h *ImageHandler) UpdateImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := h.imageService.UpdateDescription(c.Request().Context(), id, middleware.Principal(c), req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, image)
}

// UpdateTags godoc
// @Summary Replace an image's tags
// @Tags images
// @Accept json
// @Produce json
// @Param id path int true "Image ID"
// @Param request body UpdateTagsRequest true "Raw tag entries"
// @Success 200 {object} ImageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /images/{id}/tags [put]
func (h *ImageHandler) UpdateTags(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateTagsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, detail, err := h.imageService.UpdateTags(c.Request().Context(), id, middleware.Principal(c), req.Tags)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ImageResponse{Image: image, Detail: detail})
}

// DeleteImage godoc
// @Summary Delete an image
// @Tags images
// @Produce json
// @Param id path int true "Image ID"
// @Success 200 {object} model.Image
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /images/{id} [delete]
func (h *ImageHandler) DeleteImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	image, err := h.imageService.DeleteImage(c.Request().Context(), id, middleware.Principal(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, image)
}
