package repository

import (
	"context"

	"gorm.io/gorm"

	"photoshare/internal/model"
)

// ImageSearchOrder selects how search pages are ordered in SQL. Rating
// ordering happens in the service after the page is fetched, so it has no
// variant here.
type ImageSearchOrder int

const (
	SearchUnordered ImageSearchOrder = iota
	SearchNewestFirst
	SearchOldestFirst
)

// ImageRepository defines image persistence operations.
type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	FindByID(ctx context.Context, id uint) (*model.Image, error)
	List(ctx context.Context) ([]model.Image, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Image, error)
	SearchByKeyword(ctx context.Context, query string, order ImageSearchOrder, skip, limit int) ([]model.Image, error)
	ListByUserPaged(ctx context.Context, userID uint, order ImageSearchOrder, skip, limit int) ([]model.Image, error)
	PublicNameExists(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, image *model.Image) error
	ReplaceTags(ctx context.Context, image *model.Image, tags []*model.Tag) error
	Delete(ctx context.Context, image *model.Image) error
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new image repository.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *model.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) FindByID(ctx context.Context, id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) List(ctx context.Context) ([]model.Image, error) {
	var images []model.Image
	if err := r.db.WithContext(ctx).Preload("Tags").Order("id").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) ListByUser(ctx context.Context, userID uint) ([]model.Image, error) {
	var images []model.Image
	if err := r.db.WithContext(ctx).Preload("Tags").
		Where("user_id = ?", userID).Order("id").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func applySearchOrder(q *gorm.DB, order ImageSearchOrder) *gorm.DB {
	switch order {
	case SearchNewestFirst:
		return q.Order("images.created_at DESC")
	case SearchOldestFirst:
		return q.Order("images.created_at ASC")
	}
	return q
}

// SearchByKeyword returns a page of images whose description or any attached
// tag name contains the query. The tag join is inner, so untagged images are
// not searchable.
func (r *imageRepository) SearchByKeyword(ctx context.Context, query string, order ImageSearchOrder, skip, limit int) ([]model.Image, error) {
	pattern := "%" + query + "%"
	q := r.db.WithContext(ctx).Model(&model.Image{}).Distinct("images.*").
		Joins("JOIN image_tags ON image_tags.image_id = images.id").
		Joins("JOIN tags ON tags.id = image_tags.tag_id").
		Where("images.description LIKE ? OR tags.name LIKE ?", pattern, pattern).
		Preload("Tags")
	q = applySearchOrder(q, order)

	var images []model.Image
	if err := q.Offset(skip).Limit(limit).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// ListByUserPaged returns a date-ordered page of one user's images.
func (r *imageRepository) ListByUserPaged(ctx context.Context, userID uint, order ImageSearchOrder, skip, limit int) ([]model.Image, error) {
	q := r.db.WithContext(ctx).Model(&model.Image{}).
		Where("user_id = ?", userID).
		Preload("Tags")
	q = applySearchOrder(q, order)

	var images []model.Image
	if err := q.Offset(skip).Limit(limit).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) PublicNameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Image{}).
		Where("public_name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *imageRepository) Update(ctx context.Context, image *model.Image) error {
	return r.db.WithContext(ctx).Save(image).Error
}

// ReplaceTags swaps the image's tag associations for the given set.
func (r *imageRepository) ReplaceTags(ctx context.Context, image *model.Image, tags []*model.Tag) error {
	return r.db.WithContext(ctx).Model(image).Association("Tags").Replace(tags)
}

func (r *imageRepository) Delete(ctx context.Context, image *model.Image) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(image).Error
}
