package ports

import (
	"context"

	"github.com/simplebanking/banking-system/internal/core/domain"
)

// AccountSummary is the public view of an account inside a user listing.
// Balance is only populated on the owner's own profile.
type AccountSummary struct {
	ID       string
	Currency domain.Currency
	Balance  int64
}

// UserListItem is one entry of the user directory listing. Other users'
// balances are never exposed here.
type UserListItem struct {
	ID       string
	Username string
	Accounts []AccountSummary
}

// UserProfile is the authenticated owner's own view, balances included.
type UserProfile struct {
	ID       string
	Username string
	Accounts []AccountSummary
}

// UserService manages the user directory.
type UserService interface {
	// CreateUser registers a new account owner with one starter account per
	// supported currency. Admin-only.
	CreateUser(ctx context.Context, actor domain.Actor, username, password string) (*UserProfile, error)

	// ListUsers returns the directory. Owner-only; admins are denied.
	ListUsers(ctx context.Context, actor domain.Actor) ([]UserListItem, error)

	// GetProfile returns the actor's own user with account balances.
	GetProfile(ctx context.Context, actor domain.Actor) (*UserProfile, error)
}
