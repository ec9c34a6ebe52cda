package models

import "time"

// Like marks that a user liked a post. At most one live row exists per
// (UserID, PostID) pair; row existence is the source of truth for liked
// state, and Post.LikesCount is a cache derived from it.
type Like struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_likes_user_post;size:64" json:"user_id"`
	PostID    string    `gorm:"not null;uniqueIndex:idx_likes_user_post;index;size:64" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
