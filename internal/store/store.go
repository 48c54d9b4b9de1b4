// Package store is the data access layer over the users and orders
// collections. Every write is validated before it reaches MongoDB and every
// failure is returned as one of the typed errors in errors.go.
package store

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/crypto/bcrypt"

	"coffeeshop/internal/database"
)

const defaultTimeout = 5 * time.Second

type Options struct {
	// Timeout bounds every store call. Zero means five seconds.
	Timeout time.Duration
	// HashCost is the bcrypt cost for new passwords. Zero means bcrypt.DefaultCost.
	HashCost int
	// Now overrides the clock used for order timestamps.
	Now func() time.Time
}

type Store struct {
	db       *mongo.Database
	users    *mongo.Collection
	orders   *mongo.Collection
	validate *validator.Validate
	timeout  time.Duration
	hashCost int
	now      func() time.Time
}

func New(db *mongo.Database, opts Options) *Store {
	s := &Store{
		db:       db,
		users:    db.Collection(database.UsersCollection),
		orders:   db.Collection(database.OrdersCollection),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		timeout:  opts.Timeout,
		hashCost: opts.HashCost,
		now:      opts.Now,
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.hashCost == 0 {
		s.hashCost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// timestamp truncates to milliseconds, the precision BSON dates keep, so the
// value returned to callers equals what a later read returns.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}
