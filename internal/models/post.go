package models

import "time"

// Post is a published feed entry. IDs are generated client-side. The
// counter fields are denormalized caches; LikesCount converges toward the
// number of live Like rows referencing the post.
type Post struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	AuthorID      string    `gorm:"not null;index;size:64" json:"author_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	ImageURL      string    `json:"image_url,omitempty"`
	LikesCount    int       `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int       `gorm:"not null;default:0" json:"comments_count"`
	SharesCount   int       `gorm:"not null;default:0" json:"shares_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
