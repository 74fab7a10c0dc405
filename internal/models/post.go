package models

import "time"

// PostDB represents a post record in the database.
// ProfilePic is denormalized: it is copied from the author's record at the
// moment of posting and never updated afterwards.
type PostDB struct {
	ID         int64     `json:"id" db:"id"`                   // Primary key, defines insertion order
	Username   string    `json:"username" db:"username"`       // Author username
	Content    string    `json:"content" db:"content"`         // Free text, required
	Image      *string   `json:"image" db:"image"`             // Optional image reference
	ProfilePic *string   `json:"profile_pic" db:"profile_pic"` // Author avatar at creation time
	CreatedAt  time.Time `json:"created_at" db:"created_at"`   // Creation timestamp
}

// Dashboard aggregates everything the dashboard page shows for one user.
type Dashboard struct {
	Username   string   `json:"username"`
	ProfilePic string   `json:"profile_pic"` // DefaultProfilePic when the user has none
	PostCount  int64    `json:"post_count"`
	Posts      []PostDB `json:"posts"`
}
