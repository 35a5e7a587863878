package model

import (
	"errors"
	"time"
)

// User is the root identity entity.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"` // "-" hides from JSON output
	Bio          string     `db:"bio" json:"bio"`
	ImageURL     *string    `db:"image_url" json:"image"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// Profile is a user's public view, relative to an optional viewer.
type Profile struct {
	Username  string  `json:"username"`
	Bio       string  `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrProfileNotFound is returned when a profile lookup by username fails
	ErrProfileNotFound = errors.New("profile not found")

	// ErrUsernameTaken is returned when attempting to register or update to a taken username
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when attempting to register or update to a taken email
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials is returned when login fails. It deliberately does
	// not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameRequired is returned when registering without a username
	ErrUsernameRequired = errors.New("username is required")

	// ErrEmailRequired is returned when registering without an email
	ErrEmailRequired = errors.New("email is required")

	// ErrPasswordRequired is returned when registering without a password
	ErrPasswordRequired = errors.New("password is required")
)
