package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simplebanking/banking-system/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository persists users and their accounts. A user and its starter
// accounts are created in one transaction so a half-registered user is never
// observable.
type UserRepository struct {
	users    *mongo.Collection
	accounts *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:    db.Collection(collectionUsers),
		accounts: db.Collection(collectionAccounts),
	}
}

type mongoUser struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		CreatedAt:    mu.CreatedAt.UTC(),
	}
}

func (r *UserRepository) CreateWithAccounts(ctx context.Context, user *domain.User, accounts []domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}

	session, err := r.users.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.users.InsertOne(sc, doc); err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			return nil, nil
		}
		docs := make([]interface{}, 0, len(accounts))
		for _, a := range accounts {
			docs = append(docs, a)
		}
		if _, err := r.accounts.InsertMany(sc, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// List returns every account owner, sorted by username. Admins are not part
// of the directory.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.users.Find(ctx,
		bson.M{"role": bson.M{"$ne": domain.RoleAdmin}},
		options.Find().SetSort(bson.D{{Key: "username", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, *mu.toDomain())
	}
	return out, cursor.Err()
}

func (r *UserRepository) AccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.accounts.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("accounts by user: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Account
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return out, nil
}

// AccountsByUsers fetches the accounts of all given users with a single $in
// query and groups them by owner.
func (r *UserRepository) AccountsByUsers(ctx context.Context, userIDs []string) (map[string][]domain.Account, error) {
	out := make(map[string][]domain.Account, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.accounts.Find(ctx, bson.M{"user_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, fmt.Errorf("accounts by users: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var a domain.Account
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		out[a.UserID] = append(out[a.UserID], a)
	}
	return out, cursor.Err()
}

// EnsureIndexes creates the unique username index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
