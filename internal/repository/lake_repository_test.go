package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

func TestLakeCreatePersistsOptionalURLs(t *testing.T) {
	env := newTestEnv(t)
	repo := NewLakeRepo(env.db)
	ctx := context.Background()

	imageURL := "https://img.example.com/forest-lake.jpg"
	mapsURL := "https://maps.example.com/?q=forest-lake"
	lake := &model.Lake{
		Name:          fmt.Sprintf("Forest Lake %d", time.Now().UnixNano()),
		Description:   "pine shore",
		Location:      "north ridge",
		ImageURL:      &imageURL,
		GoogleMapsURL: &mapsURL,
		CreatedBy:     env.userID,
	}
	require.NoError(t, repo.Create(ctx, lake))
	require.NotZero(t, lake.ID)
	t.Cleanup(func() { _, _ = env.db.Exec("DELETE FROM lakes WHERE id = ?", lake.ID) })

	// Both optional URLs must survive the insert, not only a later update.
	got, err := repo.GetByID(ctx, lake.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, imageURL, *got.ImageURL)
	require.NotNil(t, got.GoogleMapsURL)
	assert.Equal(t, mapsURL, *got.GoogleMapsURL)
}

func TestLakeCreateDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	repo := NewLakeRepo(env.db)
	ctx := context.Background()

	name := fmt.Sprintf("Twin Lake %d", time.Now().UnixNano())
	first := &model.Lake{Name: name, Description: "a", Location: "here", CreatedBy: env.userID}
	require.NoError(t, repo.Create(ctx, first))
	t.Cleanup(func() { _, _ = env.db.Exec("DELETE FROM lakes WHERE id = ?", first.ID) })

	second := &model.Lake{Name: name, Description: "b", Location: "there", CreatedBy: env.userID}
	assert.ErrorIs(t, repo.Create(ctx, second), ErrDuplicateLakeName)
}
