package service

import (
	"context"
	"fmt"

	"satellite/internal/cache"
	"satellite/internal/models"
	"satellite/internal/observability"
	"satellite/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// DefaultFeedLimit is the fixed recent-post window when none is configured.
const DefaultFeedLimit = 20

// FeedService materializes the feed: the recent-post window joined with
// author summaries and the viewer's like state.
type FeedService struct {
	posts    repository.PostRepository
	profiles repository.ProfileRepository
	likes    repository.LikeRepository
}

func NewFeedService(
	posts repository.PostRepository,
	profiles repository.ProfileRepository,
	likes repository.LikeRepository,
) *FeedService {
	return &FeedService{
		posts:    posts,
		profiles: profiles,
		likes:    likes,
	}
}

// Load returns the limit most recent posts enriched per viewer, most
// recent first. Callers must have resolved a profile for viewerID first.
// A failure of the primary post fetch aborts the whole load so the caller
// can keep whatever feed it already displays; a missing author profile
// only nils that item's author.
func (s *FeedService) Load(ctx context.Context, viewerID string, limit int) ([]models.FeedItem, error) {
	span, ctx := observability.NewSpan(ctx, "feed.load")
	defer span.End()

	if viewerID == "" {
		return nil, models.NewValidationError("feed load requires a resolved viewer profile")
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	span.AddAttributes(attribute.Int("feed.limit", limit))

	// The raw window is viewer-independent and short-lived in cache;
	// like state is re-derived below on every load.
	var posts []*models.Post
	err := cache.Aside(ctx, cache.FeedKey(limit), &posts, cache.FeedTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.posts.ListRecent(ctx, limit)
		return fetchErr
	})
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("fetching recent posts: %w", err)
	}

	items := make([]models.FeedItem, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	for i, post := range posts {
		i, post := i, post
		g.Go(func() error {
			item, err := s.enrich(gctx, viewerID, post)
			if err != nil {
				return err
			}
			// Slots are indexed by fetch position, so output order
			// matches the post fetch order regardless of which
			// lookup finishes first.
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.SetError(err)
		return nil, err
	}

	return items, nil
}

// enrich joins one post with its author summary and the viewer's like
// state.
func (s *FeedService) enrich(ctx context.Context, viewerID string, post *models.Post) (models.FeedItem, error) {
	item := models.FeedItem{Post: *post}

	author, err := s.profiles.GetByID(ctx, post.AuthorID)
	switch {
	case err == nil:
		item.Author = author.Summary()
	case models.IsNotFound(err):
		// deleted or inconsistent author: keep the raw post
	default:
		return models.FeedItem{}, fmt.Errorf("fetching author for post %s: %w", post.ID, err)
	}

	_, err = s.likes.Find(ctx, viewerID, post.ID)
	switch {
	case err == nil:
		item.IsLiked = true
	case models.IsNotFound(err):
	default:
		return models.FeedItem{}, fmt.Errorf("fetching like state for post %s: %w", post.ID, err)
	}

	return item, nil
}
