package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/middleware"
	"photoshare/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest carries a comment's text.
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=1024"`
}

// ListComments godoc
// @Summary Comments on an image
// @Tags comments
// @Produce json
// @Param image_id path int true "Image ID"
// @Success 200 {array} model.Comment
// @Security BearerAuth
// @Router /comments/image/{image_id} [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	imageID, err := pathID(c, "image_id")
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListComments(c.Request().Context(), imageID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateComment godoc
// @Summary Comment on an image
// @Tags comments
// @Accept json
// @Produce json
// @Param image_id path int true "Image ID"
// @Param request body CommentRequest true "Comment text"
// @Success 201 {object} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments/{image_id} [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	imageID, err := pathID(c, "image_id")
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), middleware.Principal(c), imageID, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param comment_id path int true "Comment ID"
// @Param request body CommentRequest true "New text"
// @Success 200 {object} model.Comment
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments/{comment_id} [put]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.UpdateComment(c.Request().Context(), middleware.Principal(c), id, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments/{comment_id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	comment, err := h.commentService.DeleteComment(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}
