package service

import (
	"context"

	"satellite/internal/models"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByIDFn     func(context.Context, string) (*models.Profile, error)
	getByEmailFn  func(context.Context, string) (*models.Profile, error)
	getByHandleFn func(context.Context, string) (*models.Profile, error)
	createFn      func(context.Context, *models.Profile) error
	updateFn      func(context.Context, string, map[string]interface{}) error
}

func (s *profileRepoStub) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *profileRepoStub) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.getByHandleFn(ctx, handle)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.updateFn(ctx, id, fields)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.Profile, error) {
			return nil, models.NewNotFoundError("profiles", id)
		},
		getByEmailFn: func(_ context.Context, email string) (*models.Profile, error) {
			return nil, models.NewNotFoundError("profiles", email)
		},
		getByHandleFn: func(_ context.Context, handle string) (*models.Profile, error) {
			return nil, models.NewNotFoundError("profiles", handle)
		},
		createFn: func(_ context.Context, _ *models.Profile) error { return nil },
		updateFn: func(_ context.Context, _ string, _ map[string]interface{}) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listRecentFn   func(context.Context, int) ([]*models.Post, error)
	listByAuthorFn func(context.Context, string, int) ([]*models.Post, error)
	createFn       func(context.Context, *models.Post) error
	updateFn       func(context.Context, string, map[string]interface{}) error
}

func (s *postRepoStub) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.updateFn(ctx, id, fields)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listRecentFn:   func(_ context.Context, _ int) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn: func(_ context.Context, _ string, _ int) ([]*models.Post, error) { return nil, nil },
		createFn:       func(_ context.Context, _ *models.Post) error { return nil },
		updateFn:       func(_ context.Context, _ string, _ map[string]interface{}) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	findFn        func(context.Context, string, string) (*models.Like, error)
	createFn      func(context.Context, *models.Like) error
	deleteFn      func(context.Context, string) error
	countByPostFn func(context.Context, string) (int64, error)
}

func (s *likeRepoStub) Find(ctx context.Context, userID, postID string) (*models.Like, error) {
	return s.findFn(ctx, userID, postID)
}
func (s *likeRepoStub) Create(ctx context.Context, like *models.Like) error {
	return s.createFn(ctx, like)
}
func (s *likeRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *likeRepoStub) CountByPost(ctx context.Context, postID string) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		findFn: func(_ context.Context, userID, postID string) (*models.Like, error) {
			return nil, models.NewNotFoundError("likes", userID+"/"+postID)
		},
		createFn:      func(_ context.Context, _ *models.Like) error { return nil },
		deleteFn:      func(_ context.Context, _ string) error { return nil },
		countByPostFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
	}
}
