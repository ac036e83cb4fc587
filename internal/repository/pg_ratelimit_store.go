package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRateLimitStore is the PostgreSQL implementation of RateLimitStore.
// Timestamps live in a bigint[] column keyed by the hashed identity, one row
// per identity, upserted on every save.
type PgRateLimitStore struct {
	pool *pgxpool.Pool
}

// NewPgRateLimitStore creates a PgRateLimitStore backed by the given pool.
func NewPgRateLimitStore(pool *pgxpool.Pool) *PgRateLimitStore {
	return &PgRateLimitStore{pool: pool}
}

// Ensure PgRateLimitStore implements RateLimitStore at compile time.
var _ RateLimitStore = (*PgRateLimitStore)(nil)

// Load returns the stored timestamps for key, or an empty slice if the
// identity has never submitted.
func (s *PgRateLimitStore) Load(ctx context.Context, key string) ([]int64, error) {
	var stamps []int64
	err := s.pool.QueryRow(ctx,
		`SELECT stamps FROM form_rate_limits WHERE key = $1`,
		key,
	).Scan(&stamps)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return stamps, nil
}

// Save upserts the timestamp sequence for key.
func (s *PgRateLimitStore) Save(ctx context.Context, key string, stamps []int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO form_rate_limits (key, stamps, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET stamps = EXCLUDED.stamps, updated_at = now()`,
		key, stamps,
	)
	return err
}
