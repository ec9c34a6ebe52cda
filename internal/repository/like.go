package repository

import (
	"context"
	"time"

	"satellite/internal/models"
	"satellite/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like record operations. Find
// returns a NOT_FOUND error when no live like exists for the pair; Create
// returns a CONFLICT error when the pair is already liked.
type LikeRepository interface {
	Find(ctx context.Context, userID, postID string) (*models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, id string) error
	CountByPost(ctx context.Context, postID string) (int64, error)
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{
		db:  db,
		log: observability.NewRepoLogger("likes"),
	}
}

func (r *likeRepository) Find(ctx context.Context, userID, postID string) (*models.Like, error) {
	defer observability.ObserveStoreOp("find", "likes", time.Now())
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&like).Error
	if err != nil {
		return nil, translateError(err, "likes", userID+"/"+postID)
	}
	return &like, nil
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	defer observability.ObserveStoreOp("create", "likes", time.Now())
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		translated := translateError(err, "likes", like.ID)
		r.log.LogError(ctx, translated, "create")
		return translated
	}
	r.log.LogOp(ctx, "create", map[string]interface{}{
		"user_id": like.UserID,
		"post_id": like.PostID,
	})
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, id string) error {
	defer observability.ObserveStoreOp("delete", "likes", time.Now())
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Like{}).Error; err != nil {
		translated := translateError(err, "likes", id)
		r.log.LogError(ctx, translated, "delete")
		return translated
	}
	r.log.LogOp(ctx, "delete", map[string]interface{}{"id": id})
	return nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	defer observability.ObserveStoreOp("count_by_post", "likes", time.Now())
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err, "likes", postID)
	}
	return count, nil
}
