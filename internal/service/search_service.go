package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// Search ordering keys taken by the API: date descending/ascending, rating
// ascending/descending.
const (
	OrderDateDesc   = "d"
	OrderDateAsc    = "-d"
	OrderRatingAsc  = "r"
	OrderRatingDesc = "-r"
)

// SearchResult couples a matched image with its average rating.
type SearchResult struct {
	Image  *model.Image `json:"image"`
	Rating float64      `json:"rating"`
}

// SearchService finds images by keyword and filters per-user uploads.
type SearchService interface {
	SearchImages(ctx context.Context, query, order string, skip, limit int) ([]SearchResult, error)
	SearchUserImages(ctx context.Context, userID uint, order string, skip, limit int) ([]model.Image, error)
}

type searchService struct {
	imageRepo  repository.ImageRepository
	ratingRepo repository.RatingRepository
}

// NewSearchService creates a new search service.
func NewSearchService(imageRepo repository.ImageRepository, ratingRepo repository.RatingRepository) SearchService {
	return &searchService{imageRepo: imageRepo, ratingRepo: ratingRepo}
}

// SearchImages matches the query against image descriptions and tag names.
// Date orderings apply in SQL; rating orderings sort the fetched page by
// average rating, so pagination happens before the rating sort. No match is
// reported as not found.
func (s *searchService) SearchImages(ctx context.Context, query, order string, skip, limit int) ([]SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))

	var sqlOrder repository.ImageSearchOrder
	byRating := false
	ratingDesc := false
	switch order {
	case OrderDateDesc:
		sqlOrder = repository.SearchNewestFirst
	case OrderDateAsc:
		sqlOrder = repository.SearchOldestFirst
	case OrderRatingAsc:
		sqlOrder = repository.SearchUnordered
		byRating = true
	case OrderRatingDesc:
		sqlOrder = repository.SearchUnordered
		byRating = true
		ratingDesc = true
	default:
		return nil, apperrors.ErrSearchOrderInvalid
	}

	images, err := s.imageRepo.SearchByKeyword(ctx, query, sqlOrder, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("search images: %w", err)
	}
	if len(images) == 0 {
		return nil, apperrors.ErrImageNotFound
	}

	results := make([]SearchResult, 0, len(images))
	for i := range images {
		ratings, err := s.ratingRepo.ListForImage(ctx, images[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list ratings: %w", err)
		}
		results = append(results, SearchResult{Image: &images[i], Rating: AverageRating(ratings)})
	}

	if byRating {
		sort.SliceStable(results, func(i, j int) bool {
			if ratingDesc {
				return results[i].Rating > results[j].Rating
			}
			return results[i].Rating < results[j].Rating
		})
	}
	return results, nil
}

// SearchUserImages returns a date-ordered page of one user's uploads. Only
// the date orderings apply here. Route-level RBAC restricts the endpoint to
// admins and moderators.
func (s *searchService) SearchUserImages(ctx context.Context, userID uint, order string, skip, limit int) ([]model.Image, error) {
	var sqlOrder repository.ImageSearchOrder
	switch order {
	case OrderDateDesc:
		sqlOrder = repository.SearchNewestFirst
	case OrderDateAsc:
		sqlOrder = repository.SearchOldestFirst
	default:
		return nil, apperrors.ErrSearchOrderInvalid
	}

	images, err := s.imageRepo.ListByUserPaged(ctx, userID, sqlOrder, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list user images: %w", err)
	}
	if len(images) == 0 {
		return nil, apperrors.ErrImageNotFound
	}
	return images, nil
}
