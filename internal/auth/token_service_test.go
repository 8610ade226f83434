package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "photoshare/internal/errors"
)

func newTestService() *TokenService {
	return NewTokenService(Config{Secret: "test-secret", Algorithm: "HS256"})
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueAccessToken("user@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.VerifyAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)
}

func TestTokenService_RefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueRefreshToken("user@example.com")
	assert.NoError(t, err)

	subject, err := svc.DecodeRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)
}

func TestTokenService_ScopeEnforcement(t *testing.T) {
	svc := newTestService()

	refresh, err := svc.IssueRefreshToken("user@example.com")
	assert.NoError(t, err)
	access, err := svc.IssueAccessToken("user@example.com")
	assert.NoError(t, err)

	// A refresh token must not pass where an access token is expected.
	_, err = svc.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, apperrors.ErrWrongScope)

	// And an access token must not be accepted for refresh.
	_, err = svc.DecodeRefreshToken(access)
	assert.ErrorIs(t, err, apperrors.ErrWrongScope)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueAccessToken("user@example.com", -time.Minute)
	assert.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenService_BadSignature(t *testing.T) {
	svc := newTestService()
	other := NewTokenService(Config{Secret: "other-secret", Algorithm: "HS256"})

	token, err := other.IssueAccessToken("user@example.com")
	assert.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrBadSignature)

	_, err = svc.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrBadSignature)
}

func TestTokenService_EmailToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueEmailToken("user@example.com")
	assert.NoError(t, err)

	subject, err := svc.DecodeEmailToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)

	_, err = svc.DecodeEmailToken("garbage")
	assert.ErrorIs(t, err, apperrors.ErrEmailTokenInvalid)
}

func TestTokenService_EmailTokenRejectsScopedTokens(t *testing.T) {
	// A leaked session token must not confirm an email address.
	svc := newTestService()

	accessToken, err := svc.IssueAccessToken("user@example.com")
	assert.NoError(t, err)
	_, err = svc.DecodeEmailToken(accessToken)
	assert.ErrorIs(t, err, apperrors.ErrEmailTokenInvalid)

	refreshToken, err := svc.IssueRefreshToken("user@example.com")
	assert.NoError(t, err)
	_, err = svc.DecodeEmailToken(refreshToken)
	assert.ErrorIs(t, err, apperrors.ErrEmailTokenInvalid)
}

func TestTokenService_UnknownAlgorithmFallsBack(t *testing.T) {
	svc := NewTokenService(Config{Secret: "test-secret", Algorithm: "RS256"})

	token, err := svc.IssueAccessToken("user@example.com")
	assert.NoError(t, err)

	subject, err := svc.VerifyAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, VerifyPassword(hash, "secret123"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
