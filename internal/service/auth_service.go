package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"photoshare/internal/auth"
	apperrors "photoshare/internal/errors"
	"photoshare/internal/mail"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// AuthService handles signup, login, token refresh and email confirmation.
type AuthService interface {
	Signup(ctx context.Context, email, username, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, presentedToken string) (accessToken, refreshToken string, err error)
	ConfirmEmail(ctx context.Context, token string) (alreadyConfirmed bool, err error)
	ResendVerification(ctx context.Context, email string) (alreadyConfirmed bool, err error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	mailer   mail.VerificationMailer
	baseURL  string
}

// NewAuthService creates a new authentication service. baseURL is the public
// address used to build confirmation links.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, mailer mail.VerificationMailer, baseURL string) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		baseURL:  baseURL,
	}
}

// Signup creates an unconfirmed account and sends the verification mail.
func (s *authService) Signup(ctx context.Context, email, username, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	if err := s.sendVerification(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates an account and returns a fresh access+refresh pair.
// The check order determines which error surfaces: account existence, email
// confirmation, password, ban.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, apperrors.ErrInvalidCredentials
		}
		return "", "", nil, fmt.Errorf("load account: %w", err)
	}
	if !user.Confirmed {
		return "", "", nil, apperrors.ErrEmailNotConfirmed
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}
	if user.Banned {
		return "", "", nil, apperrors.ErrBanned
	}

	accessToken, err := s.tokens.IssueAccessToken(user.Email)
	if err != nil {
		return "", "", nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.Email)
	if err != nil {
		return "", "", nil, err
	}
	if err := s.userRepo.SetRefreshToken(ctx, user.Email, &refreshToken); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}
	return accessToken, refreshToken, user, nil
}

// Refresh rotates the refresh token. The presented token must match the
// account's stored one byte for byte; a mismatch revokes the stored token and
// fails, so a replayed refresh token poisons the session instead of silently
// working.
func (s *authService) Refresh(ctx context.Context, presentedToken string) (string, string, error) {
	subject, err := s.tokens.DecodeRefreshToken(presentedToken)
	if err != nil {
		return "", "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", apperrors.ErrAccountNotFound
		}
		return "", "", fmt.Errorf("load account: %w", err)
	}
	if user.Banned {
		return "", "", apperrors.ErrBanned
	}

	accessToken, err := s.tokens.IssueAccessToken(subject)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(subject)
	if err != nil {
		return "", "", err
	}

	rotated, err := s.userRepo.RotateRefreshToken(ctx, subject, presentedToken, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("rotate refresh token: %w", err)
	}
	if !rotated {
		if err := s.userRepo.SetRefreshToken(ctx, subject, nil); err != nil {
			return "", "", fmt.Errorf("revoke refresh token: %w", err)
		}
		return "", "", apperrors.ErrReuseDetected
	}
	return accessToken, refreshToken, nil
}

// ConfirmEmail flips the account's confirmed flag. Confirming an already
// confirmed account is a no-op success.
func (s *authService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	email, err := s.tokens.DecodeEmailToken(token)
	if err != nil {
		return false, err
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, apperrors.ErrEmailTokenInvalid
	}
	if user.Confirmed {
		return true, nil
	}
	if err := s.userRepo.SetConfirmed(ctx, email); err != nil {
		return false, fmt.Errorf("confirm email: %w", err)
	}
	return false, nil
}

// ResendVerification sends a fresh confirmation mail unless the account is
// already confirmed.
func (s *authService) ResendVerification(ctx context.Context, email string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, apperrors.ErrAccountNotFound
	}
	if user.Confirmed {
		return true, nil
	}
	if err := s.sendVerification(user); err != nil {
		return false, err
	}
	return false, nil
}

func (s *authService) sendVerification(user *model.User) error {
	token, err := s.tokens.IssueEmailToken(user.Email)
	if err != nil {
		return err
	}
	confirmURL := fmt.Sprintf("%s/api/auth/confirm/%s", s.baseURL, token)
	// Delivery happens off the request path, matching the original's
	// background send; a failure is logged, not surfaced.
	go func(email, username string) {
		if err := s.mailer.SendVerificationEmail(email, username, confirmURL); err != nil {
			log.Printf("send verification mail to %s: %v", email, err)
		}
	}(user.Email, user.Username)
	return nil
}
