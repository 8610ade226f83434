package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"photoshare/internal/model"
	"photoshare/internal/rbac"
)

// UserRepository defines account persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetRefreshToken(ctx context.Context, email string, token *string) error
	RotateRefreshToken(ctx context.Context, email, presented, next string) (bool, error)
	SetConfirmed(ctx context.Context, email string) error
	SetBanned(ctx context.Context, email string, banned bool) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new account. The first account in a system without an
// admin is promoted to admin; everyone after that defaults to user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin model.User
		err := tx.Where("role = ?", string(rbac.RoleAdmin)).First(&admin).Error
		switch {
		case err == nil:
			user.Role = string(rbac.RoleUser)
		case errors.Is(err, gorm.ErrRecordNotFound):
			user.Role = string(rbac.RoleAdmin)
		default:
			return err
		}
		return tx.Create(user).Error
	})
}

// FindByEmail finds an account by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds an account by username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing account.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// SetRefreshToken overwrites the stored refresh token; nil revokes it.
func (r *userRepository) SetRefreshToken(ctx context.Context, email string, token *string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("refresh_token", token).Error
}

// RotateRefreshToken swaps the stored refresh token for a new one only if
// the presented token still matches. The conditional update keeps two
// concurrent refresh calls from both succeeding against a stale value.
func (r *userRepository) RotateRefreshToken(ctx context.Context, email, presented, next string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND refresh_token = ?", email, presented).
		Update("refresh_token", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetConfirmed flips the confirmed flag for the account.
func (r *userRepository) SetConfirmed(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("confirmed", true).Error
}

// SetBanned sets the banned flag and returns the updated account.
func (r *userRepository) SetBanned(ctx context.Context, email string, banned bool) (*model.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(user).Update("banned", banned).Error; err != nil {
		return nil, err
	}
	return user, nil
}
