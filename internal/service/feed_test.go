package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"satellite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePosts(n int) []*models.Post {
	posts := make([]*models.Post, n)
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		posts[i] = &models.Post{
			ID:        fmt.Sprintf("post-%d", i),
			AuthorID:  fmt.Sprintf("author-%d", i),
			Content:   fmt.Sprintf("content %d", i),
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		}
	}
	return posts
}

func TestFeedLoad_PreservesFetchOrder(t *testing.T) {
	posts := makePosts(20)
	postsRepo := noopPostRepo()
	postsRepo.listRecentFn = func(_ context.Context, limit int) ([]*models.Post, error) {
		require.Equal(t, 20, limit)
		return posts, nil
	}
	profiles := noopProfileRepo()
	profiles.getByIDFn = func(_ context.Context, id string) (*models.Profile, error) {
		return &models.Profile{ID: id, Email: id + "@x.com", Handle: id}, nil
	}

	svc := NewFeedService(postsRepo, profiles, noopLikeRepo())
	items, err := svc.Load(context.Background(), "viewer", 20)
	require.NoError(t, err)
	require.Len(t, items, 20)
	for i, item := range items {
		assert.Equal(t, posts[i].ID, item.Post.ID, "item %d out of order", i)
		require.NotNil(t, item.Author)
		assert.Equal(t, posts[i].AuthorID, item.Author.Handle)
		assert.False(t, item.IsLiked)
	}
}

func TestFeedLoad_MarksViewerLikes(t *testing.T) {
	posts := makePosts(3)
	postsRepo := noopPostRepo()
	postsRepo.listRecentFn = func(_ context.Context, _ int) ([]*models.Post, error) {
		return posts, nil
	}
	likes := noopLikeRepo()
	likes.findFn = func(_ context.Context, userID, postID string) (*models.Like, error) {
		if userID == "viewer" && postID == "post-1" {
			return &models.Like{ID: "l1", UserID: userID, PostID: postID}, nil
		}
		return nil, models.NewNotFoundError("likes", postID)
	}

	svc := NewFeedService(postsRepo, noopProfileRepo(), likes)
	items, err := svc.Load(context.Background(), "viewer", 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.False(t, items[0].IsLiked)
	assert.True(t, items[1].IsLiked)
	assert.False(t, items[2].IsLiked)
}

func TestFeedLoad_MissingAuthorYieldsNilAuthor(t *testing.T) {
	posts := makePosts(2)
	postsRepo := noopPostRepo()
	postsRepo.listRecentFn = func(_ context.Context, _ int) ([]*models.Post, error) {
		return posts, nil
	}
	profiles := noopProfileRepo()
	profiles.getByIDFn = func(_ context.Context, id string) (*models.Profile, error) {
		if id == "author-0" {
			return &models.Profile{ID: id, Email: id + "@x.com", Handle: id}, nil
		}
		return nil, models.NewNotFoundError("profiles", id)
	}

	svc := NewFeedService(postsRepo, profiles, noopLikeRepo())
	items, err := svc.Load(context.Background(), "viewer", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotNil(t, items[0].Author)
	assert.Nil(t, items[1].Author)
	assert.Equal(t, posts[1].Content, items[1].Post.Content)
}

func TestFeedLoad_PrimaryFetchFailureAborts(t *testing.T) {
	postsRepo := noopPostRepo()
	postsRepo.listRecentFn = func(_ context.Context, _ int) ([]*models.Post, error) {
		return nil, models.NewStoreError("posts store operation failed", errors.New("down"))
	}

	svc := NewFeedService(postsRepo, noopProfileRepo(), noopLikeRepo())
	items, err := svc.Load(context.Background(), "viewer", 20)
	require.Error(t, err)
	assert.Nil(t, items)
}

func TestFeedLoad_EnrichmentFailureAborts(t *testing.T) {
	posts := makePosts(3)
	postsRepo := noopPostRepo()
	postsRepo.listRecentFn = func(_ context.Context, _ int) ([]*models.Post, error) {
		return posts, nil
	}
	profiles := noopProfileRepo()
	profiles.getByIDFn = func(_ context.Context, id string) (*models.Profile, error) {
		if id == "author-1" {
			return nil, models.NewStoreError("profiles store operation failed", errors.New("down"))
		}
		return &models.Profile{ID: id, Email: id + "@x.com", Handle: id}, nil
	}

	svc := NewFeedService(postsRepo, profiles, noopLikeRepo())
	_, err := svc.Load(context.Background(), "viewer", 3)
	assert.Error(t, err)
}

func TestFeedLoad_RequiresViewer(t *testing.T) {
	svc := NewFeedService(noopPostRepo(), noopProfileRepo(), noopLikeRepo())
	_, err := svc.Load(context.Background(), "", 20)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestFeedLoad_EmptyWindow(t *testing.T) {
	svc := NewFeedService(noopPostRepo(), noopProfileRepo(), noopLikeRepo())
	items, err := svc.Load(context.Background(), "viewer", 20)
	require.NoError(t, err)
	assert.Empty(t, items)
}
