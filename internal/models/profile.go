// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// Profile is the durable application-level identity record for a principal.
// The ID equals the authenticating principal's ID. Email and Handle are
// unique store-wide; the counter fields are denormalized caches maintained
// by whichever component performs the corresponding mutation, not
// authoritative counts.
type Profile struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	DisplayName    string    `json:"display_name"`
	Handle         string    `gorm:"uniqueIndex;not null;size:64" json:"handle"`
	Bio            string    `gorm:"type:text" json:"bio"`
	AvatarURL      string    `json:"avatar_url"`
	PostsCount     int       `gorm:"not null;default:0" json:"posts_count"`
	FollowingCount int       `gorm:"not null;default:0" json:"following_count"`
	FollowersCount int       `gorm:"not null;default:0" json:"followers_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AuthorSummary is the slice of a Profile that gets joined onto feed items.
type AuthorSummary struct {
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Summary returns the author view of the profile. Display name and handle
// fall back to the email local part for profiles created before those
// fields were backfilled.
func (p *Profile) Summary() *AuthorSummary {
	local := p.Email
	if at := strings.Index(p.Email, "@"); at > 0 {
		local = p.Email[:at]
	}
	s := &AuthorSummary{
		DisplayName: p.DisplayName,
		Handle:      p.Handle,
		AvatarURL:   p.AvatarURL,
	}
	if s.DisplayName == "" {
		s.DisplayName = local
	}
	if s.Handle == "" {
		s.Handle = local
	}
	return s
}
