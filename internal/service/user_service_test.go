package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/rbac"
)

func TestUserService_UpdateProfile(t *testing.T) {
	target := func() *model.User {
		return &model.User{ID: 5, Username: "bob", Email: "bob@example.com", Role: string(rbac.RoleUser)}
	}

	tests := []struct {
		name          string
		principal     *model.User
		expectedError error
	}{
		{"user edits own profile", &model.User{ID: 5, Role: string(rbac.RoleUser)}, nil},
		{"user may not edit another profile", &model.User{ID: 6, Role: string(rbac.RoleUser)}, apperrors.ErrForbidden},
		{"moderator edits another profile", &model.User{ID: 6, Role: string(rbac.RoleModerator)}, nil},
		{"admin edits another profile", &model.User{ID: 6, Role: string(rbac.RoleAdmin)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockRepo.On("FindByUsername", mock.Anything, "bob").Return(target(), nil)
			if tt.expectedError == nil {
				mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			}

			svc := NewUserService(mockRepo, nil)
			updated, err := svc.UpdateProfile(context.Background(), tt.principal, "bob", "bobby", "bobby@example.com")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "bobby", updated.Username)
				assert.Equal(t, "bobby@example.com", updated.Email)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, nil)
	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestUserService_SetBanned(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("SetBanned", mock.Anything, "bob@example.com", true).
		Return(&model.User{ID: 5, Email: "bob@example.com", Banned: true}, nil)

	svc := NewUserService(mockRepo, nil)
	user, err := svc.SetBanned(context.Background(), "bob@example.com", true)

	assert.NoError(t, err)
	assert.True(t, user.Banned)
	mockRepo.AssertExpectations(t)
}
