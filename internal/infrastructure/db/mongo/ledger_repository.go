package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/simplebanking/banking-system/internal/core/domain"
	"github.com/simplebanking/banking-system/internal/core/ports"
)

const collectionAccounts = "accounts"

// LedgerRepository is the Mongo-backed transactional store for account
// balances. Single-account mutations are conditional FindOneAndUpdate calls
// (the balance check and the increment are one server-side operation);
// transfers run inside a multi-document transaction.
type LedgerRepository struct {
	col *mongo.Collection
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{col: db.Collection(collectionAccounts)}
}

// FindAccount returns the committed state of one account.
func (r *LedgerRepository) FindAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var acc domain.Account
	err := r.col.FindOne(ctx, bson.M{"_id": accountID}).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &acc, nil
}

// Credit atomically increments the balance and returns the updated account.
func (r *LedgerRepository) Credit(ctx context.Context, accountID string, amount int64) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var acc domain.Account
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": accountID},
		bson.M{"$inc": bson.M{"balance": amount}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("credit account: %w", err)
	}
	return &acc, nil
}

// Debit atomically decrements the balance. The filter requires
// balance >= amount, so the funds check and the decrement cannot be
// interleaved by a concurrent writer and the balance can never go negative.
func (r *LedgerRepository) Debit(ctx context.Context, accountID string, amount int64) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var acc domain.Account
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": accountID, "balance": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"balance": -amount}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&acc)
	if err == nil {
		return &acc, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("debit account: %w", err)
	}

	// No match: either the account is missing or the funds are short.
	if _, findErr := r.FindAccount(ctx, accountID); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrInsufficientFunds
}

// Transfer moves funds between two accounts in one transaction. Destination
// ownership, currency equality, and source funds are re-checked under the
// transaction; the two updates are applied in ascending account-id order so
// concurrent opposite-direction transfers acquire document locks in the same
// order. Residual contention after the driver's transient-error retries is
// reported as domain.ErrConflict.
func (r *LedgerRepository) Transfer(ctx context.Context, p ports.TransferParams) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	session, err := r.col.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, r.transferTxn(sc, p)
	}, txnOpts)
	if err == nil {
		return nil
	}
	if isDomainErr(err) {
		return err
	}
	if isTransient(err) {
		return fmt.Errorf("transfer: %w", domain.ErrConflict)
	}
	return fmt.Errorf("transfer: %w", err)
}

func (r *LedgerRepository) transferTxn(sc mongo.SessionContext, p ports.TransferParams) error {
	var from, to domain.Account
	if err := r.col.FindOne(sc, bson.M{"_id": p.FromAccountID}).Decode(&from); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrAccountNotFound
		}
		return err
	}
	if err := r.col.FindOne(sc, bson.M{"_id": p.ToAccountID}).Decode(&to); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrAccountNotFound
		}
		return err
	}

	if to.UserID != p.ToUserID {
		return domain.ErrInvalidDestination
	}
	if from.Currency != to.Currency {
		return domain.ErrCurrencyMismatch
	}
	if from.Balance < p.Amount {
		return domain.ErrInsufficientFunds
	}

	type update struct {
		filter bson.M
		change bson.M
		short  error // returned when the filter matches nothing
	}
	debit := update{
		filter: bson.M{"_id": p.FromAccountID, "balance": bson.M{"$gte": p.Amount}},
		change: bson.M{"$inc": bson.M{"balance": -p.Amount}},
		short:  domain.ErrInsufficientFunds,
	}
	credit := update{
		filter: bson.M{"_id": p.ToAccountID},
		change: bson.M{"$inc": bson.M{"balance": p.Amount}},
		short:  domain.ErrAccountNotFound,
	}

	// Fixed global lock order: ascending account id.
	ordered := []update{debit, credit}
	if p.ToAccountID < p.FromAccountID {
		ordered = []update{credit, debit}
	}
	for _, u := range ordered {
		res, err := r.col.UpdateOne(sc, u.filter, u.change)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			// A concurrent commit invalidated the snapshot; abort the
			// whole transaction, nothing is applied.
			return u.short
		}
	}
	return nil
}

// EnsureIndexes creates the indexes the ledger queries rely on.
func (r *LedgerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	return err
}

func isDomainErr(err error) bool {
	return errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrCurrencyMismatch) ||
		errors.Is(err, domain.ErrInvalidDestination)
}

func isTransient(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.HasErrorLabel("TransientTransactionError") || ce.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
