package domain

import (
	"errors"
	"time"
)

const (
	// RoleAdmin manages the user directory but holds no accounts.
	RoleAdmin = "admin"
	// RoleOwner holds accounts and is the only role allowed to move money.
	RoleOwner = "owner"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is a registered identity. Username and role are fixed at creation.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor is the caller identity resolved for one request by the auth layer.
// It is never persisted.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsOwner reports whether the actor carries the account-owner role.
func (a Actor) IsOwner() bool { return a.Role == RoleOwner }
