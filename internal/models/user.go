package models

import "time"

// DefaultProfilePic is shown for users who registered without an avatar.
const DefaultProfilePic = "/static/img/man.png"

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                     // Primary key
	Username     string    `json:"username" db:"username"`         // Unique username, case-sensitive
	PasswordHash string    `json:"-" db:"password_hash"`           // Bcrypt hash, plaintext is never stored
	ProfilePic   *string   `json:"profile_pic" db:"profile_pic"`   // Optional avatar reference
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
}
