// Package formtoken issues and verifies the anti-forgery token a form must
// echo back with its submission.
package formtoken

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Verification errors. ErrMissing is reserved for the caller-side empty-token
// case so handlers can distinguish an absent token from a forged one.
var (
	ErrMissing   = errors.New("formtoken: missing token")
	ErrMalformed = errors.New("formtoken: malformed token")
	ErrExpired   = errors.New("formtoken: expired token")
	ErrInvalid   = errors.New("formtoken: invalid signature")
	ErrUsed      = errors.New("formtoken: token already used")
)

const defaultTTL = 24 * time.Hour

// Verifier issues signed single-use tokens. A token is a random nonce plus
// its expiry, HMAC-signed with the server secret; a replay cache marks each
// verified token as spent until it would have expired anyway.
type Verifier struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu   sync.Mutex
	used map[string]int64 // token -> expiry unix
}

// New creates a Verifier with a 24 hour token lifetime.
func New(secret []byte) *Verifier {
	return &Verifier{
		secret: secret,
		ttl:    defaultTTL,
		now:    time.Now,
		used:   make(map[string]int64),
	}
}

// Issue creates a fresh token for one form render.
func (v *Verifier) Issue() string {
	nonce := make([]byte, 16)
	_, _ = rand.Read(nonce)
	expiry := strconv.FormatInt(v.now().Add(v.ttl).Unix(), 10)
	payload := hex.EncodeToString(nonce) + "." + expiry
	return payload + "." + v.sign(payload)
}

// Verify checks shape, expiry, signature and single use, in that order.
// A token that verifies once is spent; verifying it again returns ErrUsed.
func (v *Verifier) Verify(token string) error {
	if token == "" {
		return ErrMissing
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ErrMalformed
	}
	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrMalformed
	}
	now := v.now().Unix()
	if expiry <= now {
		return ErrExpired
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(v.sign(payload)), []byte(parts[2])) {
		return ErrInvalid
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for spent, exp := range v.used {
		if exp <= now {
			delete(v.used, spent)
		}
	}
	if _, spent := v.used[token]; spent {
		return ErrUsed
	}
	v.used[token] = expiry
	return nil
}

func (v *Verifier) sign(payload string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

const minSecretLen = 32

// SecretBytes は文字列から署名用のバイト列を生成する（最低32バイト）
func SecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
