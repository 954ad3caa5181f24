package history

import (
	"context"
	"strconv"
	"testing"

	"subnetter/internal/ipv4"
	"subnetter/internal/subnet"
)

func TestMemoryStoreInsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	result := subnet.Compute(ipv4.MustParseDotted("192.168.1.0"), 24)
	entry, err := store.Insert(ctx, Entry{Input: "192.168.1.0/24", Result: result})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if entry.ID == "" {
		t.Error("Insert did not assign an ID")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("Insert did not assign a timestamp")
	}

	entries, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List returned %d entries, want 1", len(entries))
	}
	if entries[0].Input != "192.168.1.0/24" {
		t.Errorf("entry input = %q", entries[0].Input)
	}
	if entries[0].Result.Network != "192.168.1.0" {
		t.Errorf("entry result network = %q", entries[0].Result.Network)
	}
}

func TestMemoryStoreListOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for i := 0; i < 5; i++ {
		input := "10.0.0." + strconv.Itoa(i) + "/32"
		if _, err := store.Insert(ctx, Entry{Input: input}); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}

	entries, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List(3) returned %d entries", len(entries))
	}
	// Newest first.
	if entries[0].Input != "10.0.0.4/32" || entries[2].Input != "10.0.0.2/32" {
		t.Errorf("unexpected order: %q ... %q", entries[0].Input, entries[2].Input)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("List(0) returned %d entries, want all 5", len(all))
	}
}

func TestMemoryStoreBoundsRetention(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.keep = 3

	for i := 0; i < 10; i++ {
		if _, err := store.Insert(ctx, Entry{Input: strconv.Itoa(i)}); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}
	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("retained %d entries, want 3", len(entries))
	}
	if entries[0].Input != "9" {
		t.Errorf("newest entry = %q, want 9", entries[0].Input)
	}
}
