package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/rbac"
	"photoshare/internal/repository"
)

// CommentService handles comments on images.
type CommentService interface {
	CreateComment(ctx context.Context, principal *model.User, imageID uint, text string) (*model.Comment, error)
	ListComments(ctx context.Context, imageID uint) ([]model.Comment, error)
	UpdateComment(ctx context.Context, principal *model.User, id uint, text string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id uint) (*model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	imageRepo   repository.ImageRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, imageRepo repository.ImageRepository) CommentService {
	return &commentService{commentRepo: commentRepo, imageRepo: imageRepo}
}

// CreateComment attaches a comment to an existing image.
func (s *commentService) CreateComment(ctx context.Context, principal *model.User, imageID uint, text string) (*model.Comment, error) {
	if _, err := s.imageRepo.FindByID(ctx, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("load image: %w", err)
	}
	comment := &model.Comment{ImageID: imageID, UserID: principal.ID, Text: text}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns every comment on an image.
func (s *commentService) ListComments(ctx context.Context, imageID uint) ([]model.Comment, error) {
	comments, err := s.commentRepo.ListForImage(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment edits a comment's text. Authors edit their own; moderators
// and admins may edit any.
func (s *commentService) UpdateComment(ctx context.Context, principal *model.User, id uint, text string) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("load comment: %w", err)
	}
	if !rbac.CanActOn(rbac.Role(principal.Role), principal.ID, comment.UserID, rbac.Elevated) {
		return nil, apperrors.ErrForbidden
	}
	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Route-level RBAC restricts this to
// moderators and admins.
func (s *commentService) DeleteComment(ctx context.Context, id uint) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("load comment: %w", err)
	}
	if err := s.commentRepo.Delete(ctx, comment); err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return comment, nil
}
