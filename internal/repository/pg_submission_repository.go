package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stitch/backend/internal/model"
)

// PgSubmissionRepository is the PostgreSQL implementation of
// SubmissionRepository.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the
// given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

// Ensure PgSubmissionRepository implements SubmissionRepository at compile time.
var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

// Save inserts a new form_submissions row and populates rec.ID and
// rec.CreatedAt from the database RETURNING clause. The forwarded field map
// is stored as jsonb.
func (r *PgSubmissionRepository) Save(ctx context.Context, rec *model.SubmissionRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO form_submissions (action, email, fields, remote_ip)
		 VALUES ($1, $2, $3, NULLIF($4, ''))
		 RETURNING id, created_at`,
		rec.Action, rec.Email, rec.Fields, rec.RemoteIP,
	).Scan(&rec.ID, &rec.CreatedAt)
}
