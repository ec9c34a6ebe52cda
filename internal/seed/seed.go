package seed

import (
	"context"
	"fmt"
	"log"

	"satellite/internal/models"
)

// Run populates the store with a demo social mesh: profiles, a spread of
// posts per profile, and likes at the configured ratio. Denormalized
// counters are written from the actual row counts so seeded data starts
// consistent.
func (f *Factory) Run(ctx context.Context) error {
	if f.opts.Profiles <= 0 {
		f.opts.Profiles = 10
	}
	if f.opts.PostsPerProfile <= 0 {
		f.opts.PostsPerProfile = 5
	}
	if f.opts.LikeRatio <= 0 {
		f.opts.LikeRatio = 0.2
	}

	profiles := make([]*models.Profile, 0, f.opts.Profiles)
	for i := 0; i < f.opts.Profiles; i++ {
		profile, err := f.CreateProfile(ctx)
		if err != nil {
			return fmt.Errorf("seeding profile %d: %w", i, err)
		}
		profiles = append(profiles, profile)
	}

	posts := make([]*models.Post, 0, f.opts.Profiles*f.opts.PostsPerProfile)
	for _, profile := range profiles {
		for i := 0; i < f.opts.PostsPerProfile; i++ {
			post, err := f.CreatePost(ctx, profile)
			if err != nil {
				return fmt.Errorf("seeding post for %s: %w", profile.Handle, err)
			}
			posts = append(posts, post)
		}
		if err := f.updateProfileCounter(ctx, profile.ID, f.opts.PostsPerProfile); err != nil {
			return err
		}
	}

	likeTotal := 0
	for _, post := range posts {
		count := 0
		for _, profile := range profiles {
			if f.rng.Float64() >= f.opts.LikeRatio {
				continue
			}
			if _, err := f.CreateLike(ctx, profile.ID, post.ID); err != nil {
				if models.IsConflict(err) {
					continue
				}
				return fmt.Errorf("seeding like on %s: %w", post.ID, err)
			}
			count++
		}
		if count > 0 {
			if err := f.updatePostCounter(ctx, post.ID, count); err != nil {
				return err
			}
		}
		likeTotal += count
	}

	log.Printf("seeded %d profiles, %d posts, %d likes",
		len(profiles), len(posts), likeTotal)
	return nil
}

func (f *Factory) updateProfileCounter(ctx context.Context, profileID string, postsCount int) error {
	if f.opts.DryRun {
		return nil
	}
	if err := f.profiles.Update(ctx, profileID, map[string]interface{}{
		"posts_count": postsCount,
	}); err != nil {
		return fmt.Errorf("updating posts_count for %s: %w", profileID, err)
	}
	return nil
}

func (f *Factory) updatePostCounter(ctx context.Context, postID string, likesCount int) error {
	if f.opts.DryRun {
		return nil
	}
	if err := f.posts.Update(ctx, postID, map[string]interface{}{
		"likes_count": likesCount,
	}); err != nil {
		return fmt.Errorf("updating likes_count for %s: %w", postID, err)
	}
	return nil
}
