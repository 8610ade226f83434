package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// StarSelection is a rating request: the caller sets one of the five flags.
type StarSelection struct {
	OneStar    bool
	TwoStars   bool
	ThreeStars bool
	FourStars  bool
	FiveStars  bool
}

func (s StarSelection) flagCount() int {
	count := 0
	for _, flag := range []bool{s.OneStar, s.TwoStars, s.ThreeStars, s.FourStars, s.FiveStars} {
		if flag {
			count++
		}
	}
	return count
}

func (s StarSelection) apply(r *model.Rating) {
	r.OneStar = s.OneStar
	r.TwoStars = s.TwoStars
	r.ThreeStars = s.ThreeStars
	r.FourStars = s.FourStars
	r.FiveStars = s.FiveStars
}

// AverageRating computes the mean star value over the given ratings, 0 when
// there are none.
func AverageRating(ratings []model.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for i := range ratings {
		sum += ratings[i].StarValue()
	}
	return float64(sum) / float64(len(ratings))
}

// RatingService handles star ratings on images.
type RatingService interface {
	CreateRating(ctx context.Context, imageID, raterID uint, sel StarSelection) (*model.Rating, error)
	UpdateRating(ctx context.Context, id uint, sel StarSelection) (*model.Rating, error)
	DeleteRating(ctx context.Context, id uint) (*model.Rating, error)
	GetRating(ctx context.Context, id uint) (*model.Rating, error)
	ImageRating(ctx context.Context, imageID uint) (float64, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	imageRepo  repository.ImageRepository
}

// NewRatingService creates a new rating service.
func NewRatingService(ratingRepo repository.RatingRepository, imageRepo repository.ImageRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, imageRepo: imageRepo}
}

// CreateRating records a star vote. Owners may not rate their own images,
// the selection must have exactly one flag set, and repeating an existing
// (rater, image) vote returns the original row unchanged.
func (s *ratingService) CreateRating(ctx context.Context, imageID, raterID uint, sel StarSelection) (*model.Rating, error) {
	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("load image: %w", err)
	}
	if image.UserID == raterID {
		return nil, apperrors.ErrOwnImageRating
	}
	if sel.flagCount() != 1 {
		return nil, apperrors.ErrRatingSelectionInvalid
	}

	existing, err := s.ratingRepo.FindByUserAndImage(ctx, raterID, imageID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up rating: %w", err)
	}

	rating := &model.Rating{ImageID: imageID, UserID: raterID}
	sel.apply(rating)
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateRating
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}
	return rating, nil
}

// UpdateRating overwrites the star flags of an existing rating. Only
// selections with more than one flag are rejected; an all-false selection is
// accepted as-is.
func (s *ratingService) UpdateRating(ctx context.Context, id uint, sel StarSelection) (*model.Rating, error) {
	if sel.flagCount() > 1 {
		return nil, apperrors.ErrRatingSelectionInvalid
	}
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRatingNotFound
		}
		return nil, fmt.Errorf("load rating: %w", err)
	}
	sel.apply(rating)
	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}
	return rating, nil
}

// DeleteRating removes a rating and returns the removed row.
func (s *ratingService) DeleteRating(ctx context.Context, id uint) (*model.Rating, error) {
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRatingNotFound
		}
		return nil, fmt.Errorf("load rating: %w", err)
	}
	if err := s.ratingRepo.Delete(ctx, rating); err != nil {
		return nil, fmt.Errorf("delete rating: %w", err)
	}
	return rating, nil
}

// GetRating returns a rating by ID.
func (s *ratingService) GetRating(ctx context.Context, id uint) (*model.Rating, error) {
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRatingNotFound
		}
		return nil, fmt.Errorf("load rating: %w", err)
	}
	return rating, nil
}

// ImageRating returns the average rating of an image.
func (s *ratingService) ImageRating(ctx context.Context, imageID uint) (float64, error) {
	ratings, err := s.ratingRepo.ListForImage(ctx, imageID)
	if err != nil {
		return 0, fmt.Errorf("list ratings: %w", err)
	}
	return AverageRating(ratings), nil
}
