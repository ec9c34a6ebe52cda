// Package seed provides helpers to create demo data for the application
// store. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"satellite/internal/models"
	"satellite/internal/repository"
	"satellite/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Options control seed volume and shape.
type Options struct {
	Profiles        int
	PostsPerProfile int
	// LikeRatio is the probability that a given profile likes a given
	// post, in [0,1].
	LikeRatio float64
	// MaxDays spreads post timestamps over this many days back.
	MaxDays int
	// DryRun logs what would be written without touching the store.
	DryRun bool
}

// Factory builds domain records and persists them through the repositories,
// so seeded data passes the same uniqueness and error translation as live
// writes.
type Factory struct {
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	likes    repository.LikeRepository
	opts     Options
	rng      *rand.Rand
}

// NewFactory creates a Factory bound to the given repositories.
func NewFactory(
	profiles repository.ProfileRepository,
	posts repository.PostRepository,
	likes repository.LikeRepository,
	opts Options,
) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		profiles: profiles,
		posts:    posts,
		likes:    likes,
		opts:     opts,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildProfile constructs a profile without persisting it. Optional
// override functions may modify the generated profile.
func (f *Factory) BuildProfile(overrides ...func(*models.Profile)) *models.Profile {
	handle := validation.NormalizeHandle(gofakeit.Username())
	if handle == "" || validation.ValidateHandle(handle) != nil {
		handle = fmt.Sprintf("user%d", gofakeit.Number(1000, 9999))
	}
	// suffix keeps generated handles collision-free across runs
	handle = fmt.Sprintf("%s%d", handle, gofakeit.Number(100, 999))

	profile := &models.Profile{
		ID:          uuid.NewString(),
		Email:       strings.ToLower(fmt.Sprintf("%s@%s", handle, gofakeit.DomainName())),
		DisplayName: gofakeit.Name(),
		Handle:      handle,
		Bio:         gofakeit.Sentence(10),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", uuid.NewString()),
	}
	for _, override := range overrides {
		override(profile)
	}
	return profile
}

// CreateProfile persists a generated profile.
func (f *Factory) CreateProfile(ctx context.Context, overrides ...func(*models.Profile)) (*models.Profile, error) {
	profile := f.BuildProfile(overrides...)
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateProfile: %s <%s>", profile.Handle, profile.Email)
		return profile, nil
	}
	if err := f.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// BuildPost constructs a post by the given author with a realistic
// created_at spread, without persisting it.
func (f *Factory) BuildPost(author *models.Profile, overrides ...func(*models.Post)) *models.Post {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute

	post := &models.Post{
		ID:        uuid.NewString(),
		AuthorID:  author.ID,
		Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
		CreatedAt: time.Now().UTC().Add(-back),
	}
	if f.rng.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", uuid.NewString())
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost persists a generated post.
func (f *Factory) CreatePost(ctx context.Context, author *models.Profile, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if f.opts.DryRun {
		log.Printf("[dry-run] CreatePost: %s by %s", post.ID, author.Handle)
		return post, nil
	}
	if err := f.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateLike persists a like row for the pair. Duplicate pairs surface as
// conflicts, same as live writes.
func (f *Factory) CreateLike(ctx context.Context, userID, postID string) (*models.Like, error) {
	like := &models.Like{
		ID:     uuid.NewString(),
		UserID: userID,
		PostID: postID,
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateLike: %s -> %s", userID, postID)
		return like, nil
	}
	if err := f.likes.Create(ctx, like); err != nil {
		return nil, err
	}
	return like, nil
}
