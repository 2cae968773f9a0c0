package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the display name chosen at signup (unique).
	Username string `json:"username"`

	// Email is the user's email address (unique, stored lowercased).
	// Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}

// NewUser creates a User with a generated ID and creation timestamp.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
