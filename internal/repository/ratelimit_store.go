package repository

import "context"

// RateLimitStore persists submission timestamps per identity key. The key is
// already a one-way hash of the submitter identity; implementations never see
// a plaintext email. Load returns an empty slice for an unknown key.
//
// The contract is a plain blob read/write: callers do read-filter-append
// without a transactional guarantee, so enforcement is best-effort under
// concurrent submissions for the same identity.
type RateLimitStore interface {
	Load(ctx context.Context, key string) ([]int64, error)
	Save(ctx context.Context, key string, stamps []int64) error
}
