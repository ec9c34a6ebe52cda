package repository

import (
	"context"
	"time"

	"satellite/internal/cache"
	"satellite/internal/models"
	"satellite/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post record operations.
type PostRepository interface {
	// ListRecent returns the limit most recent posts, created_at
	// descending. Ties keep store order.
	ListRecent(ctx context.Context, limit int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db:  db,
		log: observability.NewRepoLogger("posts"),
	}
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	defer observability.ObserveStoreOp("list_recent", "posts", time.Now())
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err, "posts", nil)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*models.Post, error) {
	defer observability.ObserveStoreOp("list_by_author", "posts", time.Now())
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err, "posts", authorID)
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.ObserveStoreOp("create", "posts", time.Now())
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		translated := translateError(err, "posts", post.ID)
		r.log.LogError(ctx, translated, "create")
		return translated
	}
	cache.InvalidateFeed(ctx)
	r.log.LogOp(ctx, "create", map[string]interface{}{
		"id":        post.ID,
		"author_id": post.AuthorID,
	})
	return nil
}

func (r *postRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	defer observability.ObserveStoreOp("update", "posts", time.Now())
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		translated := translateError(res.Error, "posts", id)
		r.log.LogError(ctx, translated, "update")
		return translated
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("posts", id)
	}
	cache.InvalidateFeed(ctx)
	r.log.LogOp(ctx, "update", map[string]interface{}{"id": id})
	return nil
}
