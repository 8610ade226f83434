package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	apperrors "photoshare/internal/errors"
)

// Token scopes. The scope claim prevents a refresh token from being presented
// where an access token is expected and vice versa.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
)

// Default token lifetimes.
const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = time.Hour
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
	// EmailTokenExpiry is the duration for which email-verification tokens are valid.
	EmailTokenExpiry = 24 * time.Hour
)

// Claims represents JWT claims. Email-verification tokens carry no scope.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Config holds the signing parameters injected at construction.
type Config struct {
	Secret     string
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	EmailTTL   time.Duration
}

// TokenService issues and verifies signed access, refresh and
// email-verification tokens.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	emailTTL   time.Duration
}

// NewTokenService creates a token service. Zero TTLs fall back to the
// defaults; an unknown or non-HMAC algorithm falls back to HS256.
func NewTokenService(cfg Config) *TokenService {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	s := &TokenService{
		secret:     []byte(cfg.Secret),
		method:     method,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		emailTTL:   cfg.EmailTTL,
	}
	if s.accessTTL <= 0 {
		s.accessTTL = AccessTokenExpiry
	}
	if s.refreshTTL <= 0 {
		s.refreshTTL = RefreshTokenExpiry
	}
	if s.emailTTL <= 0 {
		s.emailTTL = EmailTokenExpiry
	}
	return s
}

func (s *TokenService) issue(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", scope, err)
	}
	return signed, nil
}

// IssueAccessToken issues a new access token for the subject. An optional TTL
// overrides the configured default.
func (s *TokenService) IssueAccessToken(subject string, ttl ...time.Duration) (string, error) {
	expiry := s.accessTTL
	if len(ttl) > 0 {
		expiry = ttl[0]
	}
	return s.issue(subject, ScopeAccess, expiry)
}

// IssueRefreshToken issues a new refresh token for the subject.
func (s *TokenService) IssueRefreshToken(subject string, ttl ...time.Duration) (string, error) {
	expiry := s.refreshTTL
	if len(ttl) > 0 {
		expiry = ttl[0]
	}
	return s.issue(subject, ScopeRefresh, expiry)
}

// IssueEmailToken issues a single-claim token used only to confirm an
// account's email address.
func (s *TokenService) IssueEmailToken(subject string) (string, error) {
	return s.issue(subject, "", s.emailTTL)
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrBadSignature
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, apperrors.ErrBadSignature
	}
	return claims, nil
}

// VerifyAccessToken verifies an access token and returns its subject.
func (s *TokenService) VerifyAccessToken(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Scope != ScopeAccess {
		return "", apperrors.ErrWrongScope
	}
	return claims.Subject, nil
}

// DecodeRefreshToken verifies a refresh token and returns its subject.
func (s *TokenService) DecodeRefreshToken(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Scope != ScopeRefresh {
		return "", apperrors.ErrWrongScope
	}
	return claims.Subject, nil
}

// DecodeEmailToken extracts the subject from an email-verification token.
// Email tokens carry no scope claim; a scoped token (access or refresh) is
// rejected, so a leaked session token cannot confirm an address.
func (s *TokenService) DecodeEmailToken(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", apperrors.ErrEmailTokenInvalid
	}
	if claims.Scope != "" {
		return "", apperrors.ErrEmailTokenInvalid
	}
	return claims.Subject, nil
}
