package ports

import (
	"context"

	"github.com/simplebanking/banking-system/internal/core/domain"
)

// UserRepository persists users and their account ownership.
type UserRepository interface {
	// CreateWithAccounts inserts the user and its starter accounts as one
	// transaction. A duplicate username fails with domain.ErrUserExists
	// and leaves nothing behind.
	CreateWithAccounts(ctx context.Context, user *domain.User, accounts []domain.Account) error

	// FindByUsername returns a user by unique username, or
	// domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID returns a user by id, or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// List returns all registered users, admins excluded.
	List(ctx context.Context) ([]domain.User, error)

	// AccountsByUser returns every account owned by the given user.
	AccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// AccountsByUsers returns the accounts of all given users in one query,
	// grouped by owner id. Users without accounts are absent from the map.
	AccountsByUsers(ctx context.Context, userIDs []string) (map[string][]domain.Account, error)
}
