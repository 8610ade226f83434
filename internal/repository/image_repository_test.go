package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"photoshare/internal/model"
)

func seedTaggedImage(t *testing.T, db *gorm.DB, ownerID uint, publicName, description string, createdAt time.Time, tagNames ...string) *model.Image {
	tags := make([]*model.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag := &model.Tag{Name: name}
		require.NoError(t, db.Where(model.Tag{Name: name}).FirstOrCreate(tag).Error)
		tags = append(tags, tag)
	}
	image := &model.Image{
		UserID:      ownerID,
		URL:         "http://x/" + publicName,
		PublicName:  publicName,
		Description: description,
		Tags:        tags,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(image).Error)
	return image
}

func TestImageRepository_SearchByKeyword(t *testing.T) {
	db := initTestDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := seedTaggedImage(t, db, 1, "beach-day", "sunset at the beach", base, "travel")
	newer := seedTaggedImage(t, db, 1, "mountain", "alpine hike", base.Add(time.Hour), "sunset")
	seedTaggedImage(t, db, 1, "portrait", "studio portrait", base.Add(2*time.Hour), "people")

	t.Run("matches description or tag name, newest first", func(t *testing.T) {
		images, err := repo.SearchByKeyword(ctx, "sunset", SearchNewestFirst, 0, 10)
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Equal(t, newer.ID, images[0].ID)
		assert.Equal(t, older.ID, images[1].ID)
	})

	t.Run("oldest first reverses the page", func(t *testing.T) {
		images, err := repo.SearchByKeyword(ctx, "sunset", SearchOldestFirst, 0, 10)
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Equal(t, older.ID, images[0].ID)
	})

	t.Run("pagination applies in the query", func(t *testing.T) {
		images, err := repo.SearchByKeyword(ctx, "sunset", SearchNewestFirst, 1, 10)
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, older.ID, images[0].ID)
	})

	t.Run("untagged image is not searchable", func(t *testing.T) {
		untagged := &model.Image{UserID: 1, URL: "http://x/bare", PublicName: "bare", Description: "sunset without tags"}
		require.NoError(t, db.Create(untagged).Error)

		images, err := repo.SearchByKeyword(ctx, "sunset", SearchNewestFirst, 0, 10)
		require.NoError(t, err)
		for _, img := range images {
			assert.NotEqual(t, untagged.ID, img.ID)
		}
	})

	t.Run("no match returns an empty page", func(t *testing.T) {
		images, err := repo.SearchByKeyword(ctx, "nomatch", SearchNewestFirst, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, images)
	})
}

func TestImageRepository_ListByUserPaged(t *testing.T) {
	db := initTestDB(t)
	repo := NewImageRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := seedTaggedImage(t, db, 7, "a", "first upload", base, "tag")
	second := seedTaggedImage(t, db, 7, "b", "second upload", base.Add(time.Hour), "tag")
	seedTaggedImage(t, db, 9, "c", "someone else", base, "tag")

	images, err := repo.ListByUserPaged(ctx, 7, SearchNewestFirst, 0, 10)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, second.ID, images[0].ID)
	assert.Equal(t, first.ID, images[1].ID)

	images, err = repo.ListByUserPaged(ctx, 7, SearchOldestFirst, 1, 1)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, second.ID, images[0].ID)
}
