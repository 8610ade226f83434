package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []model.Rating
		want    float64
	}{
		{"no ratings", nil, 0},
		{"single one-star", []model.Rating{{OneStar: true}}, 1},
		{"two and four average to three", []model.Rating{{TwoStars: true}, {FourStars: true}}, 3},
		{"all-false rating counts as zero", []model.Rating{{FiveStars: true}, {}}, 2.5},
		{"five stars", []model.Rating{{FiveStars: true}}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageRating(tt.ratings))
		})
	}
}

func TestRatingService_CreateRating(t *testing.T) {
	tests := []struct {
		name          string
		raterID       uint
		selection     StarSelection
		setupMock     func(*MockRatingRepository, *MockImageRepository)
		expectedError error
	}{
		{
			name:      "successful vote",
			raterID:   2,
			selection: StarSelection{FourStars: true},
			setupMock: func(mRating *MockRatingRepository, mImage *MockImageRepository) {
				mImage.On("FindByID", mock.Anything, uint(10)).Return(&model.Image{ID: 10, UserID: 1}, nil)
				mRating.On("FindByUserAndImage", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)
				mRating.On("Create", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(nil)
			},
		},
		{
			name:      "image not found",
			raterID:   2,
			selection: StarSelection{OneStar: true},
			setupMock: func(mRating *MockRatingRepository, mImage *MockImageRepository) {
				mImage.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrImageNotFound,
		},
		{
			name:      "owner may not rate own image",
			raterID:   1,
			selection: StarSelection{FiveStars: true},
			setupMock: func(mRating *MockRatingRepository, mImage *MockImageRepository) {
				mImage.On("FindByID", mock.Anything, uint(10)).Return(&model.Image{ID: 10, UserID: 1}, nil)
			},
			expectedError: apperrors.ErrOwnImageRating,
		},
		{
			name:      "no star selected",
			raterID:   2,
			selection: StarSelection{},
			setupMock: func(mRating *MockRatingRepository, mImage *MockImageRepository) {
				mImage.On("FindByID", mock.Anything, uint(10)).Return(&model.Image{ID: 10, UserID: 1}, nil)
			},
			expectedError: apperrors.ErrRatingSelectionInvalid,
		},
		{
			name:      "two stars selected",
			raterID:   2,
			selection: StarSelection{OneStar: true, FiveStars: true},
			setupMock: func(mRating *MockRatingRepository, mImage *MockImageRepository) {
				mImage.On("FindByID", mock.Anything, uint(10)).Return(&model.Image{ID: 10, UserID: 1}, nil)
			},
			expectedError: apperrors.ErrRatingSelectionInvalid,
		},
		{
			name:      "duplicate insert race",
			raterID:   2,
			selection: StarSelection{ThreeStars: true},
			setupMock: func(mRating *MockRatingRepository, mImage *MockImageRepository) {
				mImage.On("FindByID", mock.Anything, uint(10)).Return(&model.Image{ID: 10, UserID: 1}, nil)
				mRating.On("FindByUserAndImage", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)
				mRating.On("Create", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRating := new(MockRatingRepository)
			mockImage := new(MockImageRepository)
			tt.setupMock(mockRating, mockImage)

			svc := NewRatingService(mockRating, mockImage)
			rating, err := svc.CreateRating(context.Background(), 10, tt.raterID, tt.selection)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, rating)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rating)
				assert.Equal(t, uint(10), rating.ImageID)
				assert.Equal(t, tt.raterID, rating.UserID)
			}

			mockRating.AssertExpectations(t)
			mockImage.AssertExpectations(t)
		})
	}
}

func TestRatingService_CreateRating_RepeatReturnsExisting(t *testing.T) {
	existing := &model.Rating{ID: 5, ImageID: 10, UserID: 2, TwoStars: true}
	mockRating := new(MockRatingRepository)
	mockImage := new(MockImageRepository)
	mockImage.On("FindByID", mock.Anything, uint(10)).Return(&model.Image{ID: 10, UserID: 1}, nil)
	mockRating.On("FindByUserAndImage", mock.Anything, uint(2), uint(10)).Return(existing, nil)

	svc := NewRatingService(mockRating, mockImage)
	rating, err := svc.CreateRating(context.Background(), 10, 2, StarSelection{FiveStars: true})

	assert.NoError(t, err)
	// The original vote stands; the new selection is discarded.
	assert.Same(t, existing, rating)
	assert.True(t, rating.TwoStars)
	assert.False(t, rating.FiveStars)
	mockRating.AssertExpectations(t)
}

func TestRatingService_UpdateRating(t *testing.T) {
	t.Run("rewrites star flags", func(t *testing.T) {
		mockRating := new(MockRatingRepository)
		mockImage := new(MockImageRepository)
		mockRating.On("FindByID", mock.Anything, uint(5)).Return(&model.Rating{ID: 5, OneStar: true}, nil)
		mockRating.On("Update", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(nil)

		svc := NewRatingService(mockRating, mockImage)
		rating, err := svc.UpdateRating(context.Background(), 5, StarSelection{FiveStars: true})

		assert.NoError(t, err)
		assert.False(t, rating.OneStar)
		assert.True(t, rating.FiveStars)
	})

	t.Run("clearing every flag is accepted", func(t *testing.T) {
		mockRating := new(MockRatingRepository)
		mockImage := new(MockImageRepository)
		mockRating.On("FindByID", mock.Anything, uint(5)).Return(&model.Rating{ID: 5, ThreeStars: true}, nil)
		mockRating.On("Update", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(nil)

		svc := NewRatingService(mockRating, mockImage)
		rating, err := svc.UpdateRating(context.Background(), 5, StarSelection{})

		assert.NoError(t, err)
		assert.Equal(t, 0, rating.StarValue())
	})

	t.Run("more than one flag rejected", func(t *testing.T) {
		svc := NewRatingService(new(MockRatingRepository), new(MockImageRepository))
		_, err := svc.UpdateRating(context.Background(), 5, StarSelection{OneStar: true, TwoStars: true})
		assert.ErrorIs(t, err, apperrors.ErrRatingSelectionInvalid)
	})

	t.Run("rating not found", func(t *testing.T) {
		mockRating := new(MockRatingRepository)
		mockRating.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewRatingService(mockRating, new(MockImageRepository))
		_, err := svc.UpdateRating(context.Background(), 5, StarSelection{OneStar: true})
		assert.ErrorIs(t, err, apperrors.ErrRatingNotFound)
	})
}

func TestRatingService_ImageRating(t *testing.T) {
	mockRating := new(MockRatingRepository)
	mockRating.On("ListForImage", mock.Anything, uint(10)).Return([]model.Rating{
		{FiveStars: true},
		{ThreeStars: true},
		{FourStars: true},
	}, nil)

	svc := NewRatingService(mockRating, new(MockImageRepository))
	avg, err := svc.ImageRating(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, 4.0, avg)
}
