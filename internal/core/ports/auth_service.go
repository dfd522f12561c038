package ports

import (
	"context"

	"github.com/simplebanking/banking-system/internal/core/domain"
)

// AuthService verifies credentials and issues bearer tokens. User creation
// lives in UserService; there is no self-registration.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
