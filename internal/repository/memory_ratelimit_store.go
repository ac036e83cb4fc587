package repository

import (
	"context"
	"sync"
)

// MemoryRateLimitStore is an in-process RateLimitStore. Used in tests and as
// the default when no DATABASE_URL or REDIS_URL is configured; state does not
// survive a restart.
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	entries map[string][]int64
}

// NewMemoryRateLimitStore creates an empty in-memory store.
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{entries: make(map[string][]int64)}
}

var _ RateLimitStore = (*MemoryRateLimitStore)(nil)

func (s *MemoryRateLimitStore) Load(_ context.Context, key string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamps := s.entries[key]
	out := make([]int64, len(stamps))
	copy(out, stamps)
	return out, nil
}

func (s *MemoryRateLimitStore) Save(_ context.Context, key string, stamps []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(stamps) == 0 {
		delete(s.entries, key)
		return nil
	}
	kept := make([]int64, len(stamps))
	copy(kept, stamps)
	s.entries[key] = kept
	return nil
}
