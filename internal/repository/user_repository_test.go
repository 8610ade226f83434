package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"photoshare/internal/model"
	"photoshare/internal/rbac"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Tag{}, &model.Image{}, &model.Rating{}, &model.Comment{}))
	return db
}

func newUser(email, username string) *model.User {
	return &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: "hash",
	}
}

func TestUserRepository_FirstAccountBecomesAdmin(t *testing.T) {
	repo := NewUserRepository(initTestDB(t))
	ctx := context.Background()

	first := newUser("first@example.com", "first")
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, string(rbac.RoleAdmin), first.Role)

	second := newUser("second@example.com", "second")
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, string(rbac.RoleUser), second.Role)

	third := newUser("third@example.com", "third")
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, string(rbac.RoleUser), third.Role)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := NewUserRepository(initTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice@example.com", "alice")))

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_RotateRefreshToken(t *testing.T) {
	repo := NewUserRepository(initTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice@example.com", "alice")))
	stored := "token-1"
	require.NoError(t, repo.SetRefreshToken(ctx, "alice@example.com", &stored))

	// Matching token rotates.
	rotated, err := repo.RotateRefreshToken(ctx, "alice@example.com", "token-1", "token-2")
	require.NoError(t, err)
	assert.True(t, rotated)

	user, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.RefreshToken)
	assert.Equal(t, "token-2", *user.RefreshToken)

	// Replaying the old token does not.
	rotated, err = repo.RotateRefreshToken(ctx, "alice@example.com", "token-1", "token-3")
	require.NoError(t, err)
	assert.False(t, rotated)

	user, err = repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "token-2", *user.RefreshToken)
}

func TestUserRepository_SetRefreshTokenNilRevokes(t *testing.T) {
	repo := NewUserRepository(initTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice@example.com", "alice")))
	stored := "token-1"
	require.NoError(t, repo.SetRefreshToken(ctx, "alice@example.com", &stored))
	require.NoError(t, repo.SetRefreshToken(ctx, "alice@example.com", nil))

	user, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, user.RefreshToken)

	rotated, err := repo.RotateRefreshToken(ctx, "alice@example.com", "token-1", "token-2")
	require.NoError(t, err)
	assert.False(t, rotated)
}

func TestUserRepository_SetConfirmedAndBanned(t *testing.T) {
	repo := NewUserRepository(initTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice@example.com", "alice")))

	require.NoError(t, repo.SetConfirmed(ctx, "alice@example.com"))
	user, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, user.Confirmed)

	banned, err := repo.SetBanned(ctx, "alice@example.com", true)
	require.NoError(t, err)
	assert.True(t, banned.Banned)

	unbanned, err := repo.SetBanned(ctx, "alice@example.com", false)
	require.NoError(t, err)
	assert.False(t, unbanned.Banned)
}
