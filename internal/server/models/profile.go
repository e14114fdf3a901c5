// Package models defines server-side data models persisted in the database.
package models

import "time"

// Profile is the application-side record of a signed-in identity. The ID is
// the OAuth provider subject, so there is exactly one profile per identity.
// A profile is created lazily the first time its owner signs in.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
