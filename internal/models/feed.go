package models

// FeedItem is a Post joined with its author summary and the viewing
// principal's like state. Computed at read time, never persisted.
// Author is nil when the author profile no longer exists.
type FeedItem struct {
	Post    Post           `json:"post"`
	Author  *AuthorSummary `json:"author,omitempty"`
	IsLiked bool           `json:"is_liked"`
}
