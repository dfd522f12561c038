package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/simplebanking/banking-system/internal/core/domain"
	"github.com/simplebanking/banking-system/internal/core/ports"
)

// IdempotencyStore abstracts the transfer replay guard (Redis).
type IdempotencyStore interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

type balanceService struct {
	ledger ports.LedgerRepository
	idem   IdempotencyStore
	log    zerolog.Logger
}

// NewBalanceService returns the balance operations engine. idem may be nil,
// in which case transfer idempotency keys are ignored.
func NewBalanceService(ledger ports.LedgerRepository, idem IdempotencyStore, log zerolog.Logger) ports.BalanceService {
	return &balanceService{ledger: ledger, idem: idem, log: log}
}

// GetAccount returns a snapshot of one account. The role gate runs before the
// lookup so that an admin probe never learns whether an account id exists.
func (s *balanceService) GetAccount(ctx context.Context, actor domain.Actor, accountID string) (*ports.AccountSnapshot, error) {
	if !CanOperateBalance(actor) {
		return nil, domain.ErrForbidden
	}

	acc, err := s.ledger.FindAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !CanAccessAccount(actor, acc.UserID) {
		return nil, domain.ErrForbidden
	}

	return snapshot(acc), nil
}

// Deposit atomically credits the account and returns the updated snapshot.
func (s *balanceService) Deposit(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !CanOperateBalance(actor) {
		return nil, domain.ErrForbidden
	}

	acc, err := s.ledger.FindAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !CanAccessAccount(actor, acc.UserID) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.ledger.Credit(ctx, accountID, amount)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	s.log.Info().
		Str("account_id", accountID).
		Int64("amount", amount).
		Int64("balance", updated.Balance).
		Msg("deposit applied")

	return snapshot(updated), nil
}

// Withdraw atomically debits the account. The sufficient-funds check and the
// decrement are one indivisible ledger operation; a rejection leaves the
// balance untouched.
func (s *balanceService) Withdraw(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !CanOperateBalance(actor) {
		return nil, domain.ErrForbidden
	}

	acc, err := s.ledger.FindAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !CanAccessAccount(actor, acc.UserID) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.ledger.Debit(ctx, accountID, amount)
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}

	s.log.Info().
		Str("account_id", accountID).
		Int64("amount", amount).
		Int64("balance", updated.Balance).
		Msg("withdrawal applied")

	return snapshot(updated), nil
}

// Transfer moves funds between two accounts of the same currency. Only the
// source owner may initiate it; the destination owner never has to match the
// actor. All checks are re-run by the ledger inside the transaction, so a
// rejection for any reason leaves both balances exactly as they were.
func (s *balanceService) Transfer(ctx context.Context, input ports.TransferInput) (*ports.TransferResult, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}
	if !CanOperateBalance(input.Actor) {
		return nil, domain.ErrForbidden
	}

	// The stored key is scoped to the acting user: the header value is
	// client-chosen, and an unscoped key would let one user's committed
	// transfer swallow another user's unrelated transfer as a replay.
	idemKey := input.Actor.UserID + ":" + input.IdempotencyKey
	if input.IdempotencyKey != "" && s.idem != nil {
		seen, err := s.idem.Seen(ctx, idemKey)
		if err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency check failed, processing anyway")
		} else if seen {
			s.log.Info().Str("idempotency_key", input.IdempotencyKey).Msg("idempotent transfer replay")
			return &ports.TransferResult{AlreadyProcessed: true}, nil
		}
	}

	from, err := s.ledger.FindAccount(ctx, input.FromAccountID)
	if err != nil {
		return nil, err
	}
	if !CanAccessAccount(input.Actor, from.UserID) {
		return nil, domain.ErrForbidden
	}

	to, err := s.ledger.FindAccount(ctx, input.ToAccountID)
	if err != nil {
		return nil, err
	}
	if to.UserID != input.ToUserID {
		return nil, domain.ErrInvalidDestination
	}
	if from.Currency != to.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	if err := s.ledger.Transfer(ctx, ports.TransferParams{
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		ToUserID:      input.ToUserID,
		Amount:        input.Amount,
	}); err != nil {
		return nil, err
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if markErr := s.idem.Mark(ctx, idemKey); markErr != nil {
			s.log.Warn().Err(markErr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to record idempotency key")
		}
	}

	s.log.Info().
		Str("from_account", input.FromAccountID).
		Str("to_account", input.ToAccountID).
		Int64("amount", input.Amount).
		Msg("transfer applied")

	return &ports.TransferResult{}, nil
}

func snapshot(acc *domain.Account) *ports.AccountSnapshot {
	return &ports.AccountSnapshot{
		ID:       acc.ID,
		Currency: acc.Currency,
		Balance:  acc.Balance,
	}
}
