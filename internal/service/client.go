package service

import (
	"context"

	"satellite/internal/models"
	"satellite/internal/observability"
	"satellite/internal/repository"
	"satellite/internal/session"
)

// ClientOptions configures a session client.
type ClientOptions struct {
	// FeedLimit is the fixed recent-post window per load.
	FeedLimit int
	// RollbackOnFailure is passed through to the interaction engine.
	RollbackOnFailure bool
}

// Client ties the engine together for one authenticated session: resolve
// the principal to a profile, load the feed, then apply interactions. The
// feed cannot be touched before Start succeeds, which enforces the
// profile-before-feed ordering.
type Client struct {
	session  session.Session
	identity *IdentityService
	feedSvc  *FeedService
	posts    repository.PostRepository
	likes    repository.LikeRepository
	profiles repository.ProfileRepository
	opts     ClientOptions

	interactions *InteractionService
}

func NewClient(
	sess session.Session,
	identity *IdentityService,
	feedSvc *FeedService,
	posts repository.PostRepository,
	likes repository.LikeRepository,
	profiles repository.ProfileRepository,
	opts ClientOptions,
) *Client {
	if opts.FeedLimit <= 0 {
		opts.FeedLimit = DefaultFeedLimit
	}
	return &Client{
		session:  sess,
		identity: identity,
		feedSvc:  feedSvc,
		posts:    posts,
		likes:    likes,
		profiles: profiles,
		opts:     opts,
	}
}

// Start resolves the session principal to a profile and performs the
// initial feed load. A resolver failure is fatal to session start and
// returned for the caller to surface with a retry path; an initial feed
// load failure is logged and leaves the feed empty, to be filled by the
// next Refresh.
func (c *Client) Start(ctx context.Context) error {
	ctx = observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())

	profile, err := c.identity.Resolve(ctx, c.session.Principal())
	if err != nil {
		return err
	}

	c.interactions = NewInteractionService(c.posts, c.likes, c.profiles, *profile, InteractionOptions{
		RollbackOnFailure: c.opts.RollbackOnFailure,
	})

	if err := c.Refresh(ctx); err != nil {
		observability.GlobalLogger.WarnContext(ctx, "initial feed load failed",
			"error", err.Error())
	}
	return nil
}

// Refresh reloads the feed window. On failure the previous in-memory feed
// stays intact.
func (c *Client) Refresh(ctx context.Context) error {
	if c.interactions == nil {
		return errNotStarted()
	}
	ctx = observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())

	items, err := c.feedSvc.Load(ctx, c.interactions.Profile().ID, c.opts.FeedLimit)
	if err != nil {
		return err
	}
	c.interactions.SetFeed(items)
	return nil
}

// CreatePost publishes a post through the interaction engine.
func (c *Client) CreatePost(ctx context.Context, content, imageURL string) (models.FeedItem, error) {
	if c.interactions == nil {
		return models.FeedItem{}, errNotStarted()
	}
	ctx = observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())
	return c.interactions.CreatePost(ctx, content, imageURL)
}

// ToggleLike flips the viewer's like on a feed post.
func (c *Client) ToggleLike(ctx context.Context, postID string) (models.FeedItem, error) {
	if c.interactions == nil {
		return models.FeedItem{}, errNotStarted()
	}
	ctx = observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())
	return c.interactions.ToggleLike(ctx, postID)
}

// ReconcileLikes recomputes a post's like counter from live like rows.
func (c *Client) ReconcileLikes(ctx context.Context, postID string) (int, error) {
	if c.interactions == nil {
		return 0, errNotStarted()
	}
	return c.interactions.ReconcileLikes(ctx, postID)
}

// Profile returns the resolved session profile.
func (c *Client) Profile() (models.Profile, error) {
	if c.interactions == nil {
		return models.Profile{}, errNotStarted()
	}
	return c.interactions.Profile(), nil
}

// Feed returns the current in-memory feed.
func (c *Client) Feed() ([]models.FeedItem, error) {
	if c.interactions == nil {
		return nil, errNotStarted()
	}
	return c.interactions.Feed(), nil
}

// Logout delegates to the session boundary.
func (c *Client) Logout(ctx context.Context) {
	c.session.Logout(ctx)
}

func errNotStarted() error {
	return models.NewValidationError("session not started: resolve a profile before using the feed")
}
