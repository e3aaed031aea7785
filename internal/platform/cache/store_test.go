package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "names"); ok {
		t.Fatal("expected miss on empty store")
	}

	store.Set(ctx, "names", []string{"Saka", "Haaland"})
	value, ok := store.Get(ctx, "names")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if names := value.([]string); len(names) != 2 {
		t.Fatalf("unexpected value %v", names)
	}

	store.Delete(ctx, "names")
	if _, ok := store.Get(ctx, "names"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)

	store.Set(ctx, "k", 1)
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)
	var loads atomic.Int32

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "names", func() (any, error) {
			loads.Add(1)
			return "loaded", nil
		})
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if value != "loaded" {
			t.Fatalf("load %d value = %v", i, value)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected one load, got %d", got)
	}

	wantErr := errors.New("boom")
	_, err := store.GetOrLoad(ctx, "broken", func() (any, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected load error, got %v", err)
	}
}
