package repository

import (
	"context"
	"testing"
)

func TestMemoryRateLimitStore_LoadUnknownKey(t *testing.T) {
	store := NewMemoryRateLimitStore()
	stamps, err := store.Load(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stamps) != 0 {
		t.Errorf("expected empty slice for unknown key, got %v", stamps)
	}
}

func TestMemoryRateLimitStore_SaveAndLoad(t *testing.T) {
	store := NewMemoryRateLimitStore()
	ctx := context.Background()

	if err := store.Save(ctx, "k1", []int64{1, 2, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stamps, err := store.Load(ctx, "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stamps) != 3 || stamps[0] != 1 || stamps[2] != 3 {
		t.Errorf("unexpected stamps: %v", stamps)
	}
}

func TestMemoryRateLimitStore_KeysAreIndependent(t *testing.T) {
	store := NewMemoryRateLimitStore()
	ctx := context.Background()

	_ = store.Save(ctx, "k1", []int64{1})
	_ = store.Save(ctx, "k2", []int64{2, 3})

	s1, _ := store.Load(ctx, "k1")
	s2, _ := store.Load(ctx, "k2")
	if len(s1) != 1 || len(s2) != 2 {
		t.Errorf("keys must not interact: k1=%v k2=%v", s1, s2)
	}
}

// Load hands out a copy; mutating it must not corrupt the stored sequence.
func TestMemoryRateLimitStore_LoadReturnsCopy(t *testing.T) {
	store := NewMemoryRateLimitStore()
	ctx := context.Background()

	_ = store.Save(ctx, "k1", []int64{10, 20})
	first, _ := store.Load(ctx, "k1")
	first[0] = 999

	second, _ := store.Load(ctx, "k1")
	if second[0] != 10 {
		t.Errorf("stored sequence was mutated through a loaded copy: %v", second)
	}
}

func TestMemoryRateLimitStore_SaveEmptyDeletes(t *testing.T) {
	store := NewMemoryRateLimitStore()
	ctx := context.Background()

	_ = store.Save(ctx, "k1", []int64{1})
	_ = store.Save(ctx, "k1", nil)

	stamps, _ := store.Load(ctx, "k1")
	if len(stamps) != 0 {
		t.Errorf("expected entry dropped, got %v", stamps)
	}
}
