package otp

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreConsumeOnce(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "123456"); err != nil {
		t.Fatalf("put: %v", err)
	}

	ok, err := store.Consume(ctx, "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if !ok {
		t.Fatal("expected first consume to succeed")
	}

	ok, err = store.Consume(ctx, "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if ok {
		t.Fatal("expected second consume of the same code to fail")
	}
}

func TestMemoryStoreWrongCode(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "123456"); err != nil {
		t.Fatalf("put: %v", err)
	}

	ok, err := store.Consume(ctx, "alice@example.com", "654321")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if ok {
		t.Fatal("expected wrong code to fail")
	}

	// The stored code is still valid after a failed attempt.
	ok, err = store.Consume(ctx, "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if !ok {
		t.Fatal("expected correct code to still verify")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "123456"); err != nil {
		t.Fatalf("put: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	ok, err := store.Consume(ctx, "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if ok {
		t.Fatal("expected expired code to fail")
	}
}

func TestMemoryStoreReplacesCode(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	if err := store.Put(ctx, "alice@example.com", "111111"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "alice@example.com", "222222"); err != nil {
		t.Fatalf("put: %v", err)
	}

	if ok, _ := store.Consume(ctx, "alice@example.com", "111111"); ok {
		t.Fatal("expected replaced code to be rejected")
	}
	if ok, _ := store.Consume(ctx, "alice@example.com", "222222"); !ok {
		t.Fatal("expected latest code to verify")
	}
}

func TestMemoryStoreUnknownEmail(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	ok, err := store.Consume(context.Background(), "nobody@example.com", "123456")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if ok {
		t.Fatal("expected unknown email to fail")
	}
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected only digits, got %q", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected varied codes across generations")
	}
}
