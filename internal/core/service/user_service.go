package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplebanking/banking-system/internal/core/domain"
	"github.com/simplebanking/banking-system/internal/core/ports"
)

type userService struct {
	repo ports.UserRepository
	log  zerolog.Logger
	// starterBalance is the opening balance of every starter account,
	// in minor units.
	starterBalance int64
}

// NewUserService returns the user directory service. Each new user gets one
// starter account per supported currency with starterBalance minor units.
func NewUserService(repo ports.UserRepository, starterBalance int64, log zerolog.Logger) ports.UserService {
	if starterBalance < 0 {
		starterBalance = 0
	}
	return &userService{repo: repo, starterBalance: starterBalance, log: log}
}

// CreateUser registers a new account owner. Only admins manage the
// directory; the created user always gets the owner role.
func (s *userService) CreateUser(ctx context.Context, actor domain.Actor, username, password string) (*ports.UserProfile, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleOwner,
		CreatedAt:    time.Now().UTC(),
	}

	accounts := make([]domain.Account, 0, len(domain.Currencies))
	for _, currency := range domain.Currencies {
		accounts = append(accounts, domain.Account{
			ID:       uuid.NewString(),
			UserID:   user.ID,
			Currency: currency,
			Balance:  s.starterBalance,
		})
	}

	if err := s.repo.CreateWithAccounts(ctx, user, accounts); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("username", username).
		Int("accounts", len(accounts)).
		Msg("user created")

	return &ports.UserProfile{
		ID:       user.ID,
		Username: user.Username,
		Accounts: summaries(accounts, true),
	}, nil
}

// ListUsers returns the directory for account owners. Admins are denied:
// they manage users through creation, not browsing, and balances of others
// must never reach them.
func (s *userService) ListUsers(ctx context.Context, actor domain.Actor) ([]ports.UserListItem, error) {
	if !actor.IsOwner() {
		return nil, domain.ErrForbidden
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	accountsByUser, err := s.repo.AccountsByUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list users: accounts: %w", err)
	}

	items := make([]ports.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, ports.UserListItem{
			ID:       u.ID,
			Username: u.Username,
			Accounts: summaries(accountsByUser[u.ID], false),
		})
	}
	return items, nil
}

// GetProfile returns the actor's own user, balances included.
func (s *userService) GetProfile(ctx context.Context, actor domain.Actor) (*ports.UserProfile, error) {
	if !actor.IsOwner() {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.repo.AccountsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("profile accounts: %w", err)
	}

	return &ports.UserProfile{
		ID:       user.ID,
		Username: user.Username,
		Accounts: summaries(accounts, true),
	}, nil
}

// summaries maps accounts to their public view. Balances are only exposed
// when the accounts belong to the requesting user.
func summaries(accounts []domain.Account, withBalance bool) []ports.AccountSummary {
	out := make([]ports.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		s := ports.AccountSummary{ID: a.ID, Currency: a.Currency}
		if withBalance {
			s.Balance = a.Balance
		}
		out = append(out, s)
	}
	return out
}
