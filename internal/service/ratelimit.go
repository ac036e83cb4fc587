package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/stitch/backend/internal/repository"
)

const (
	// defaultRateLimit is the maximum number of submissions per identity
	// inside one window.
	defaultRateLimit = 5
	// defaultRateWindow is the sliding lookback interval.
	defaultRateWindow = time.Hour
)

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Allowed  bool
	Retained int // timestamps still inside the window after eviction
}

// RateLimiter enforces a per-email submission quota over a sliding window.
// The store key is a one-way hash of the normalized email, never the
// plaintext address. Enforcement is read-filter-append without a
// transactional guarantee; concurrent submissions for one identity may
// overshoot by one, which this design accepts.
type RateLimiter struct {
	store  repository.RateLimitStore
	limit  int
	window time.Duration

	// LogPlaintextEmail switches the violation log from the hashed
	// identity to the raw address. Off by default.
	LogPlaintextEmail bool

	now func() time.Time
}

// NewRateLimiter creates a limiter over the given store with the default
// quota of 5 submissions per hour.
func NewRateLimiter(store repository.RateLimitStore) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  defaultRateLimit,
		window: defaultRateWindow,
		now:    time.Now,
	}
}

// IdentityKey derives the storage key for an email address: lower-cased,
// trimmed, then hashed so the store never holds the plaintext address.
func IdentityKey(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Check evicts expired timestamps for the identity, then either records the
// attempt and allows it, or rejects it without recording. remoteIP is used
// only for the violation log.
func (l *RateLimiter) Check(ctx context.Context, email, remoteIP string) (Decision, error) {
	key := IdentityKey(email)

	stamps, err := l.store.Load(ctx, key)
	if err != nil {
		return Decision{}, err
	}

	now := l.now()
	cutoff := now.Add(-l.window).Unix()

	kept := stamps[:0]
	for _, ts := range stamps {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.logViolation(email, key, remoteIP)
		return Decision{Allowed: false, Retained: len(kept)}, nil
	}

	kept = append(kept, now.Unix())
	if err := l.store.Save(ctx, key, kept); err != nil {
		return Decision{}, err
	}
	return Decision{Allowed: true, Retained: len(kept)}, nil
}

func (l *RateLimiter) logViolation(email, key, remoteIP string) {
	identity := key
	if l.LogPlaintextEmail {
		identity = strings.ToLower(strings.TrimSpace(email))
	}
	if remoteIP == "" {
		remoteIP = "unknown"
	}
	slog.Warn("form rate limit exceeded",
		"identity", identity,
		"ip", remoteIP,
	)
}
