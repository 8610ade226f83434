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

// ImageView couples an image with its aggregate rating and comments.
type ImageView struct {
	Image    *model.Image    `json:"image"`
	Rating   float64         `json:"rating"`
	Comments []model.Comment `json:"comments"`
}

// ImageService handles image metadata, tag attachment and ownership rules.
type ImageService interface {
	AddImage(ctx context.Context, owner *model.User, description, url, publicName string, rawTags []string) (*model.Image, string, error)
	GetImage(ctx context.Context, id uint) (*ImageView, error)
	ListImages(ctx context.Context) ([]ImageView, error)
	ListUserImages(ctx context.Context, userID uint) ([]ImageView, error)
	UpdateDescription(ctx context.Context, id uint, principal *model.User, description string) (*model.Image, error)
	UpdateTags(ctx context.Context, id uint, principal *model.User, rawTags []string) (*model.Image, string, error)
	DeleteImage(ctx context.Context, id uint, principal *model.User) (*model.Image, error)
}

type imageService struct {
	imageRepo   repository.ImageRepository
	tagRepo     repository.TagRepository
	ratingRepo  repository.RatingRepository
	commentRepo repository.CommentRepository
}

// NewImageService creates a new image service.
func NewImageService(imageRepo repository.ImageRepository, tagRepo repository.TagRepository, ratingRepo repository.RatingRepository, commentRepo repository.CommentRepository) ImageService {
	return &imageService{
		imageRepo:   imageRepo,
		tagRepo:     tagRepo,
		ratingRepo:  ratingRepo,
		commentRepo: commentRepo,
	}
}

// imageElevated is the role set allowed to act on other users' images.
var imageElevated = []rbac.Role{rbac.RoleAdmin}

// prepareTags normalizes raw tag input, makes sure every normalized tag has a
// Tag row, and returns the capped set to associate plus a warning when tags
// were dropped. Excess tags still become Tag rows; they just are not attached.
func (s *imageService) prepareTags(ctx context.Context, rawTags []string) ([]*model.Tag, string, error) {
	normalized := NormalizeTags(rawTags)

	attach := make([]*model.Tag, 0, MaxTagsPerImage)
	for i, name := range normalized {
		tag, err := s.tagRepo.FirstOrCreate(ctx, name)
		if err != nil {
			return nil, "", fmt.Errorf("ensure tag %q: %w", name, err)
		}
		if i < MaxTagsPerImage {
			attach = append(attach, tag)
		}
	}

	detail := ""
	if dropped := len(normalized) - MaxTagsPerImage; dropped > 0 {
		detail = fmt.Sprintf("only the first %d tags were attached, %d dropped", MaxTagsPerImage, dropped)
	}
	return attach, detail, nil
}

// uniquePublicName suffixes the requested name until it no longer collides.
func (s *imageService) uniquePublicName(ctx context.Context, publicName string) (string, error) {
	candidate := publicName
	suffix := 1
	for {
		exists, err := s.imageRepo.PublicNameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check public name: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		suffix++
		candidate = fmt.Sprintf("%s_%d", publicName, suffix)
	}
}

// AddImage stores image metadata with normalized tags. The returned string
// is a warning when more than the allowed number of tags was submitted.
func (s *imageService) AddImage(ctx context.Context, owner *model.User, description, url, publicName string, rawTags []string) (*model.Image, string, error) {
	tags, detail, err := s.prepareTags(ctx, rawTags)
	if err != nil {
		return nil, "", err
	}
	name, err := s.uniquePublicName(ctx, publicName)
	if err != nil {
		return nil, "", err
	}

	image := &model.Image{
		UserID:      owner.ID,
		URL:         url,
		PublicName:  name,
		Description: description,
		Tags:        tags,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, "", fmt.Errorf("create image: %w", err)
	}
	return image, detail, nil
}

func (s *imageService) view(ctx context.Context, image *model.Image) (*ImageView, error) {
	ratings, err := s.ratingRepo.ListForImage(ctx, image.ID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	comments, err := s.commentRepo.ListForImage(ctx, image.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return &ImageView{Image: image, Rating: AverageRating(ratings), Comments: comments}, nil
}

// GetImage returns one image with its average rating and comments.
func (s *imageService) GetImage(ctx context.Context, id uint) (*ImageView, error) {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("load image: %w", err)
	}
	return s.view(ctx, image)
}

// ListImages returns all images with their aggregates.
func (s *imageService) ListImages(ctx context.Context) ([]ImageView, error) {
	images, err := s.imageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	views := make([]ImageView, 0, len(images))
	for i := range images {
		v, err := s.view(ctx, &images[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// ListUserImages returns one user's images with their aggregates.
func (s *imageService) ListUserImages(ctx context.Context, userID uint) ([]ImageView, error) {
	images, err := s.imageRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	views := make([]ImageView, 0, len(images))
	for i := range images {
		v, err := s.view(ctx, &images[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *imageService) ownedImage(ctx context.Context, id uint, principal *model.User) (*model.Image, error) {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("load image: %w", err)
	}
	if !rbac.CanActOn(rbac.Role(principal.Role), principal.ID, image.UserID, imageElevated) {
		return nil, apperrors.ErrForbidden
	}
	return image, nil
}

// UpdateDescription changes an image's description; owners only, admins
// excepted.
func (s *imageService) UpdateDescription(ctx context.Context, id uint, principal *model.User, description string) (*model.Image, error) {
	image, err := s.ownedImage(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	image.Description = description
	if err := s.imageRepo.Update(ctx, image); err != nil {
		return nil, fmt.Errorf("update image: %w", err)
	}
	return image, nil
}

// UpdateTags replaces an image's tags with the normalized, capped set.
func (s *imageService) UpdateTags(ctx context.Context, id uint, principal *model.User, rawTags []string) (*model.Image, string, error) {
	image, err := s.ownedImage(ctx, id, principal)
	if err != nil {
		return nil, "", err
	}
	tags, detail, err := s.prepareTags(ctx, rawTags)
	if err != nil {
		return nil, "", err
	}
	if err := s.imageRepo.ReplaceTags(ctx, image, tags); err != nil {
		return nil, "", fmt.Errorf("replace tags: %w", err)
	}
	image.Tags = tags
	return image, detail, nil
}

// DeleteImage removes an image; owners only, admins excepted.
func (s *imageService) DeleteImage(ctx context.Context, id uint, principal *model.User) (*model.Image, error) {
	image, err := s.ownedImage(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	if err := s.imageRepo.Delete(ctx, image); err != nil {
		return nil, fmt.Errorf("delete image: %w", err)
	}
	return image, nil
}
