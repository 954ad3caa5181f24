// Package history persists recent subnet calculations so the UI can
// re-offer them. Backends are selected at build time (see cmd/subnetterd).
package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"subnetter/internal/subnet"
)

// ErrNotFound indicates the requested entry does not exist.
var ErrNotFound = errors.New("not found")

// defaultKeep bounds how many entries the memory store retains.
const defaultKeep = 1000

// Entry is one stored calculation: the raw user input plus the record
// computed from it.
type Entry struct {
	ID        string        `json:"id"`
	Input     string        `json:"input"`
	Mask      string        `json:"mask,omitempty"`
	Result    subnet.Result `json:"result"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store persists calculation history.
type Store interface {
	// Insert stores an entry, assigning ID and CreatedAt when unset.
	Insert(ctx context.Context, e Entry) (Entry, error)
	// List returns up to limit entries, newest first.
	List(ctx context.Context, limit int) ([]Entry, error)
	// Close releases resources held by the store.
	Close() error
}

// MemoryStore is an in-memory implementation for quick start and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry // newest first
	keep    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keep: defaultKeep}
}

func (m *MemoryStore) Insert(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]Entry{e}, m.entries...)
	if len(m.entries) > m.keep {
		m.entries = m.entries[:m.keep]
	}
	return e, nil
}

func (m *MemoryStore) List(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]Entry, limit)
	copy(out, m.entries[:limit])
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
