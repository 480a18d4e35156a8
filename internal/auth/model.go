package auth

import (
	"errors"
	"time"
)

var (
	// ErrEmailInUse is returned when registering an email that already has an account.
	ErrEmailInUse = errors.New("email already in use")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is returned when name, email or password is blank.
	ErrMissingFields = errors.New("missing required fields")
	// ErrUserNotFound is returned by repositories when no user has the email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken is returned for tokens that are malformed, expired or signed with another key.
	ErrInvalidToken = errors.New("invalid token")
)

// User is a registered account. PasswordHash is a bcrypt hash and never leaves
// the server.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
