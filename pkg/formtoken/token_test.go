package formtoken

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestVerifier() *Verifier {
	return New(SecretBytes("test-secret"))
}

func TestIssueAndVerify(t *testing.T) {
	v := newTestVerifier()
	token := v.Issue()
	if err := v.Verify(token); err != nil {
		t.Errorf("freshly issued token must verify, got %v", err)
	}
}

func TestVerify_SingleUse(t *testing.T) {
	v := newTestVerifier()
	token := v.Issue()
	if err := v.Verify(token); err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if err := v.Verify(token); !errors.Is(err, ErrUsed) {
		t.Errorf("expected ErrUsed on replay, got %v", err)
	}
}

func TestVerify_Missing(t *testing.T) {
	if err := newTestVerifier().Verify(""); !errors.Is(err, ErrMissing) {
		t.Errorf("expected ErrMissing, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	v := newTestVerifier()
	for _, token := range []string{"abc", "a.b", "a.not-a-number.c", "a.b.c.d"} {
		if err := v.Verify(token); !errors.Is(err, ErrMalformed) {
			t.Errorf("%q: expected ErrMalformed, got %v", token, err)
		}
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	v := newTestVerifier()
	token := v.Issue()
	tampered := token[:len(token)-2] + "xx"
	if err := v.Verify(tampered); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestVerify_TamperedExpiry(t *testing.T) {
	v := newTestVerifier()
	parts := strings.Split(v.Issue(), ".")
	forged := parts[0] + ".99999999999." + parts[2]
	if err := v.Verify(forged); !errors.Is(err, ErrInvalid) {
		t.Errorf("extending the expiry must break the signature, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	v := newTestVerifier()
	token := v.Issue()

	v.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if err := v.Verify(token); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_DifferentSecret(t *testing.T) {
	token := New(SecretBytes("secret-one")).Issue()
	other := New(SecretBytes("secret-two"))
	if err := other.Verify(token); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid across secrets, got %v", err)
	}
}

func TestSecretBytes_PadsShortSecrets(t *testing.T) {
	b := SecretBytes("short")
	if len(b) != 32 {
		t.Errorf("expected 32 bytes, got %d", len(b))
	}
	long := strings.Repeat("x", 40)
	if got := SecretBytes(long); len(got) != 40 {
		t.Errorf("long secrets must pass through, got %d bytes", len(got))
	}
}
