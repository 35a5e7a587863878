package model

import (
	"errors"
	"time"
)

// TokenClaims is the identity a verified session token carries.
type TokenClaims struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// ErrInvalidToken covers malformed, forged and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")
