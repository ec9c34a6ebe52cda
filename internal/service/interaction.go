package service

import (
	"context"
	"sync"
	"time"

	"satellite/internal/models"
	"satellite/internal/observability"
	"satellite/internal/repository"
	"satellite/internal/validation"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// InteractionOptions configures the interaction engine's failure policy.
type InteractionOptions struct {
	// RollbackOnFailure undoes the optimistic local update when a remote
	// write of a like toggle fails. The default (false) keeps the local
	// state, matching a UI that stays visually consistent and reports the
	// error separately.
	RollbackOnFailure bool
}

// InteractionService is the session-scoped interaction engine. It owns the
// resolved profile and the in-memory feed, applies optimistic local
// mutations for post creation and like toggles, and keeps the store's
// denormalized counters in step.
type InteractionService struct {
	posts    repository.PostRepository
	likes    repository.LikeRepository
	profiles repository.ProfileRepository
	opts     InteractionOptions

	mu      sync.Mutex
	profile models.Profile
	feed    []models.FeedItem
}

func NewInteractionService(
	posts repository.PostRepository,
	likes repository.LikeRepository,
	profiles repository.ProfileRepository,
	profile models.Profile,
	opts InteractionOptions,
) *InteractionService {
	return &InteractionService{
		posts:    posts,
		likes:    likes,
		profiles: profiles,
		opts:     opts,
		profile:  profile,
	}
}

// Profile returns a copy of the session profile, including local counter
// updates applied since resolution.
func (s *InteractionService) Profile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Feed returns a copy of the current in-memory feed.
func (s *InteractionService) Feed() []models.FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FeedItem(nil), s.feed...)
}

// SetFeed replaces the in-memory feed with a freshly loaded one.
func (s *InteractionService) SetFeed(items []models.FeedItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = append([]models.FeedItem(nil), items...)
}

// CreatePost publishes a new post and prepends it to the in-memory feed.
// Empty or whitespace-only content is rejected before any store call. The
// post write and the posts_count increment are two store writes; if either
// fails the error is returned and no local state changes. A counter write
// failing after the post write leaves counter drift the engine does not
// retry.
func (s *InteractionService) CreatePost(ctx context.Context, content, imageURL string) (models.FeedItem, error) {
	span, ctx := observability.NewSpan(ctx, "interaction.create_post")
	defer span.End()

	if err := validation.ValidatePostContent(content); err != nil {
		return models.FeedItem{}, models.NewValidationError(err.Error())
	}

	s.mu.Lock()
	author := s.profile
	s.mu.Unlock()

	post := models.Post{
		ID:        uuid.NewString(),
		AuthorID:  author.ID,
		Content:   content,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}
	span.AddAttributes(attribute.String("post.id", post.ID))

	if err := s.posts.Create(ctx, &post); err != nil {
		span.SetError(err)
		return models.FeedItem{}, err
	}
	if err := s.profiles.Update(ctx, author.ID, map[string]interface{}{
		"posts_count": author.PostsCount + 1,
	}); err != nil {
		// The post row exists; the author counter is now stale until the
		// next successful mutation recomputes it.
		span.SetError(err)
		observability.GlobalLogger.ErrorContext(ctx, "posts_count update failed after post write",
			"post_id", post.ID, "error", err.Error())
		return models.FeedItem{}, err
	}

	item := models.FeedItem{
		Post:    post,
		Author:  author.Summary(),
		IsLiked: false,
	}

	s.mu.Lock()
	s.feed = append([]models.FeedItem{item}, s.feed...)
	s.profile.PostsCount++
	s.mu.Unlock()

	return item, nil
}

// ToggleLike flips the viewer's like on the given feed post. The local
// item is updated optimistically (IsLiked flipped, count adjusted by one)
// before the remote writes; on remote failure the local update is kept or
// rolled back per InteractionOptions. The like-row write precedes the
// counter write in both directions so the row, the source of truth, is
// never behind the cache it feeds.
func (s *InteractionService) ToggleLike(ctx context.Context, postID string) (models.FeedItem, error) {
	span, ctx := observability.NewSpan(ctx, "interaction.toggle_like")
	defer span.End()
	span.AddAttributes(attribute.String("post.id", postID))

	s.mu.Lock()
	idx := s.indexOfLocked(postID)
	if idx < 0 {
		s.mu.Unlock()
		return models.FeedItem{}, models.NewNotFoundError("feed item", postID)
	}
	viewerID := s.profile.ID
	wasLiked := s.feed[idx].IsLiked
	prevCount := s.feed[idx].Post.LikesCount

	// Optimistic local flip, independent of the remote outcome.
	s.applyLikeLocked(idx, !wasLiked)
	item := s.feed[idx]
	s.mu.Unlock()

	var err error
	if wasLiked {
		err = s.unlike(ctx, viewerID, postID, prevCount)
	} else {
		err = s.like(ctx, viewerID, postID, prevCount)
	}
	if err != nil {
		span.SetError(err)
		observability.GlobalLogger.ErrorContext(ctx, "like toggle remote write failed",
			"post_id", postID, "rollback", s.opts.RollbackOnFailure, "error", err.Error())
		if s.opts.RollbackOnFailure {
			s.mu.Lock()
			if idx := s.indexOfLocked(postID); idx >= 0 {
				s.applyLikeLocked(idx, wasLiked)
				item = s.feed[idx]
			}
			s.mu.Unlock()
		}
		return item, err
	}

	return item, nil
}

// like creates the like row, then writes the incremented counter.
func (s *InteractionService) like(ctx context.Context, viewerID, postID string, prevCount int) error {
	err := s.likes.Create(ctx, &models.Like{
		ID:     uuid.NewString(),
		UserID: viewerID,
		PostID: postID,
	})
	if err != nil && !models.IsConflict(err) {
		return err
	}
	// A conflict means another session of this viewer already liked the
	// post; converge on liked and still refresh the counter.
	return s.posts.Update(ctx, postID, map[string]interface{}{
		"likes_count": prevCount + 1,
	})
}

// unlike deletes the live like row if present, then writes the clamped
// decremented counter.
func (s *InteractionService) unlike(ctx context.Context, viewerID, postID string, prevCount int) error {
	like, err := s.likes.Find(ctx, viewerID, postID)
	switch {
	case err == nil:
		if err := s.likes.Delete(ctx, like.ID); err != nil {
			return err
		}
	case models.IsNotFound(err):
		// already gone; counter still gets clamped below
	default:
		return err
	}

	newCount := prevCount - 1
	if newCount < 0 {
		newCount = 0
	}
	return s.posts.Update(ctx, postID, map[string]interface{}{
		"likes_count": newCount,
	})
}

// ReconcileLikes recomputes the post's likes_count from the live like rows
// and writes it, replacing whatever incremental drift accumulated.
// Idempotent; safe to invoke at any time.
func (s *InteractionService) ReconcileLikes(ctx context.Context, postID string) (int, error) {
	span, ctx := observability.NewSpan(ctx, "interaction.reconcile_likes")
	defer span.End()
	span.AddAttributes(attribute.String("post.id", postID))

	count, err := s.likes.CountByPost(ctx, postID)
	if err != nil {
		span.SetError(err)
		return 0, err
	}
	if err := s.posts.Update(ctx, postID, map[string]interface{}{
		"likes_count": count,
	}); err != nil {
		span.SetError(err)
		return 0, err
	}

	s.mu.Lock()
	if idx := s.indexOfLocked(postID); idx >= 0 {
		s.feed[idx].Post.LikesCount = int(count)
	}
	s.mu.Unlock()

	return int(count), nil
}

// indexOfLocked returns the feed index of the post, or -1. Caller holds mu.
func (s *InteractionService) indexOfLocked(postID string) int {
	for i := range s.feed {
		if s.feed[i].Post.ID == postID {
			return i
		}
	}
	return -1
}

// applyLikeLocked sets the liked state and adjusts the cached count by
// one, clamped at zero. Caller holds mu.
func (s *InteractionService) applyLikeLocked(idx int, liked bool) {
	if s.feed[idx].IsLiked == liked {
		return
	}
	s.feed[idx].IsLiked = liked
	if liked {
		s.feed[idx].Post.LikesCount++
	} else if s.feed[idx].Post.LikesCount > 0 {
		s.feed[idx].Post.LikesCount--
	}
}
