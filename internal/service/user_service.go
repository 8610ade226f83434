package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"photoshare/internal/cache"
	apperrors "photoshare/internal/errors"
	"photoshare/internal/model"
	"photoshare/internal/rbac"
	"photoshare/internal/repository"
)

// UserService handles profiles and moderation of accounts.
type UserService interface {
	GetProfile(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, principal *model.User, username, newUsername, newEmail string) (*model.User, error)
	SetBanned(ctx context.Context, email string, banned bool) (*model.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	principals *cache.Client
}

// NewUserService creates a new user service. The cache client holds the
// per-request principal lookups and is invalidated on account mutation.
func NewUserService(userRepo repository.UserRepository, principals *cache.Client) UserService {
	return &userService{userRepo: userRepo, principals: principals}
}

// GetProfile returns the public profile for a username.
func (s *userService) GetProfile(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

// UpdateProfile changes a user's username/email. Regular users may only edit
// their own profile; moderators and admins may edit anyone's.
func (s *userService) UpdateProfile(ctx context.Context, principal *model.User, username, newUsername, newEmail string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !rbac.CanActOn(rbac.Role(principal.Role), principal.ID, user.ID, rbac.Elevated) {
		return nil, apperrors.ErrForbidden
	}

	oldEmail := user.Email
	user.Username = newUsername
	user.Email = newEmail
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.principals.InvalidatePrincipal(ctx, oldEmail)
	return user, nil
}

// SetBanned flips an account's banned flag. Route-level RBAC restricts this
// to admins; the ban takes effect at the next login or refresh, outstanding
// access tokens ride out their TTL.
func (s *userService) SetBanned(ctx context.Context, email string, banned bool) (*model.User, error) {
	user, err := s.userRepo.SetBanned(ctx, email, banned)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("set banned: %w", err)
	}
	s.principals.InvalidatePrincipal(ctx, email)
	return user, nil
}
