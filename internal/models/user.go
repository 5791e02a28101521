package models

import "time"

// User represents a registered user account.
type User struct {
	// ID is the unique, positive identifier for the user.
	// Assigned by the store on creation.
	ID int64

	// Email is the user's email address (unique). Used for login.
	Email string

	// Username is the display name of the user.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64
}

// NewUser returns a user ready to be persisted. The ID is assigned by the store.
func NewUser(email, username, passwordHash string) *User {
	return &User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
