package ports

import (
	"context"

	"github.com/simplebanking/banking-system/internal/core/domain"
)

// AccountSnapshot is the immutable view of an account returned by every
// balance operation. Balance is in minor units.
type AccountSnapshot struct {
	ID       string
	Currency domain.Currency
	Balance  int64
}

// TransferInput carries one peer-to-peer transfer request.
type TransferInput struct {
	Actor         domain.Actor
	FromAccountID string
	ToAccountID   string
	// ToUserID is the client's statement of who owns the destination
	// account; a mismatch rejects the transfer.
	ToUserID string
	Amount   int64
	// IdempotencyKey, when non-empty, protects against duplicate
	// submissions of the same transfer.
	IdempotencyKey string
}

// TransferResult acknowledges a completed transfer.
type TransferResult struct {
	// AlreadyProcessed is true when the idempotency key matched an earlier
	// successful transfer and no funds were moved by this call.
	AlreadyProcessed bool
}

// BalanceService defines the balance mutation operations. Every call checks
// authorization before touching the ledger and returns a typed domain error
// on rejection; a rejected call never leaves a partial mutation behind.
type BalanceService interface {
	GetAccount(ctx context.Context, actor domain.Actor, accountID string) (*AccountSnapshot, error)
	Deposit(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*AccountSnapshot, error)
	Withdraw(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*AccountSnapshot, error)
	Transfer(ctx context.Context, input TransferInput) (*TransferResult, error)
}
