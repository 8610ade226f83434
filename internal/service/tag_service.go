package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// MaxTagLength is the longest a tag name may be; longer input is truncated.
const MaxTagLength = 25

// MaxTagsPerImage caps how many tags get associated with one image.
const MaxTagsPerImage = 5

// NormalizeTags canonicalizes free-text tag input: each entry is split on
// commas, trimmed, emptied-out pieces dropped, truncated to MaxTagLength,
// lower-cased, then deduplicated preserving first-seen order.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{})
	normalized := []string{}
	for _, entry := range raw {
		for _, piece := range strings.Split(entry, ",") {
			tag := strings.TrimSpace(piece)
			if tag == "" {
				continue
			}
			if runes := []rune(tag); len(runes) > MaxTagLength {
				tag = string(runes[:MaxTagLength])
			}
			tag = strings.ToLower(tag)
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			normalized = append(normalized, tag)
		}
	}
	return normalized
}

// TagService handles tag CRUD.
type TagService interface {
	CreateTag(ctx context.Context, name string) (*model.Tag, error)
	GetTag(ctx context.Context, id uint) (*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	ListTags(ctx context.Context, skip, limit int) ([]model.Tag, error)
	UpdateTag(ctx context.Context, id uint, name string) (*model.Tag, error)
	DeleteTag(ctx context.Context, id uint) (*model.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// CreateTag creates a tag with a lower-cased name, failing on duplicates.
func (s *tagService) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.ToLower(name)
	if _, err := s.tagRepo.FindByName(ctx, name); err == nil {
		return nil, apperrors.ErrTagExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up tag: %w", err)
	}

	tag := &model.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

// GetTag returns a tag by ID.
func (s *tagService) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, fmt.Errorf("load tag: %w", err)
	}
	return tag, nil
}

// GetTagByName returns a tag by its lower-cased name.
func (s *tagService) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByName(ctx, strings.ToLower(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, fmt.Errorf("load tag: %w", err)
	}
	return tag, nil
}

// ListTags returns a page of tags.
func (s *tagService) ListTags(ctx context.Context, skip, limit int) ([]model.Tag, error) {
	tags, err := s.tagRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// UpdateTag renames a tag, failing if the new name is taken.
func (s *tagService) UpdateTag(ctx context.Context, id uint, name string) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, fmt.Errorf("load tag: %w", err)
	}

	name = strings.ToLower(name)
	if existing, err := s.tagRepo.FindByName(ctx, name); err == nil && existing.ID != tag.ID {
		return nil, apperrors.ErrTagExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up tag: %w", err)
	}

	tag.Name = name
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// DeleteTag removes a tag and returns the removed row.
func (s *tagService) DeleteTag(ctx context.Context, id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, fmt.Errorf("load tag: %w", err)
	}
	if err := s.tagRepo.Delete(ctx, tag); err != nil {
		return nil, fmt.Errorf("delete tag: %w", err)
	}
	return tag, nil
}
