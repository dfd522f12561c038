package ports

import (
	"context"

	"github.com/simplebanking/banking-system/internal/core/domain"
)

// TransferParams carries everything the ledger needs to move funds between
// two accounts in one transaction.
type TransferParams struct {
	FromAccountID string
	ToAccountID   string
	// ToUserID is the owner the caller claims the destination belongs to.
	// The ledger re-checks it under the transaction.
	ToUserID string
	Amount   int64
}

// LedgerRepository is the transactional store for account balances.
//
// Every mutation is a single atomic read-modify-write: implementations must
// never expose a state where a debit has been applied without its matching
// credit, or where a balance has gone below zero.
type LedgerRepository interface {
	// FindAccount returns the current committed state of an account, or
	// domain.ErrAccountNotFound.
	FindAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// Credit atomically increments the balance and returns the updated
	// account. Amount must already be validated as positive.
	Credit(ctx context.Context, accountID string, amount int64) (*domain.Account, error)

	// Debit atomically decrements the balance, failing with
	// domain.ErrInsufficientFunds when the balance is lower than amount.
	// The balance check and the decrement are one indivisible operation.
	Debit(ctx context.Context, accountID string, amount int64) (*domain.Account, error)

	// Transfer moves funds between two accounts as one transaction,
	// re-validating destination ownership, currency equality, and source
	// funds under the transaction. On any failure neither balance changes.
	// Contention that cannot be resolved surfaces as domain.ErrConflict.
	Transfer(ctx context.Context, p TransferParams) error
}
