package repository

import (
	"context"

	"gorm.io/gorm"

	"photoshare/internal/model"
)

// RatingRepository defines rating persistence operations.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	FindByID(ctx context.Context, id uint) (*model.Rating, error)
	FindByUserAndImage(ctx context.Context, userID, imageID uint) (*model.Rating, error)
	ListForImage(ctx context.Context, imageID uint) ([]model.Rating, error)
	Update(ctx context.Context, rating *model.Rating) error
	Delete(ctx context.Context, rating *model.Rating) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) FindByID(ctx context.Context, id uint) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) FindByUserAndImage(ctx context.Context, userID, imageID uint) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND image_id = ?", userID, imageID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) ListForImage(ctx context.Context, imageID uint) ([]model.Rating, error) {
	var ratings []model.Rating
	if err := r.db.WithContext(ctx).Where("image_id = ?", imageID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) Update(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *ratingRepository) Delete(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Delete(rating).Error
}
