package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simplebanking/banking-system/internal/core/domain"
)

func seedLoginUser(t *testing.T, repo *stubUserRepo, username, password, role string) *domain.User {
	t.Helper()
	svc := NewUserService(repo, 1, nopLogger)
	if role == domain.RoleAdmin {
		auth := NewAuthService(repo, "secret", time.Hour, nopLogger)
		if err := auth.EnsureAdmin(context.Background(), username, password); err != nil {
			t.Fatalf("seed admin: %v", err)
		}
	} else {
		if _, err := svc.CreateUser(context.Background(), admin(), username, password); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	user, err := repo.FindByUsername(context.Background(), username)
	if err != nil {
		t.Fatalf("seeded user missing: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedLoginUser(t, repo, "carol", "s3cret", domain.RoleOwner)
	svc := NewAuthService(repo, "secret", time.Hour, nopLogger)

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected token, got empty")
	}
	if user == nil || user.ID != seeded.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["user_id"] != seeded.ID {
		t.Errorf("user_id claim: want %s, got %v", seeded.ID, claims["user_id"])
	}
	if claims["role"] != domain.RoleOwner {
		t.Errorf("role claim: want %s, got %v", domain.RoleOwner, claims["role"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedLoginUser(t, repo, "carol", "s3cret", domain.RoleOwner)
	svc := NewAuthService(repo, "secret", time.Hour, nopLogger)

	_, _, err := svc.Login(context.Background(), "carol", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nopLogger)

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown user must map to ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nopLogger)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty username: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "user", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_EnsureAdmin_CreatesOnce(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nopLogger)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "root", "rootpass"); err != nil {
		t.Fatalf("first EnsureAdmin failed: %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "root", "rootpass"); err != nil {
		t.Fatalf("EnsureAdmin must be idempotent: %v", err)
	}

	user, err := repo.FindByUsername(ctx, "root")
	if err != nil {
		t.Fatalf("admin not stored: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", user.Role)
	}

	// Admins hold no accounts.
	accounts, _ := repo.AccountsByUser(ctx, user.ID)
	if len(accounts) != 0 {
		t.Errorf("admin must own no accounts, got %d", len(accounts))
	}
}

func TestAuthService_EnsureAdmin_EmptyConfigSkips(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, nopLogger)

	if err := svc.EnsureAdmin(context.Background(), "", ""); err != nil {
		t.Fatalf("empty bootstrap config must be a no-op, got %v", err)
	}
	if users, _ := repo.List(context.Background()); len(users) != 0 {
		t.Errorf("no user should be created, got %d", len(users))
	}
}
