// Package history keeps the ordered log of past conversions.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/cambiomz/metical-converter/pkg/config"
	"github.com/cambiomz/metical-converter/pkg/domain"
	"github.com/cambiomz/metical-converter/pkg/kv"
)

// Store is an append-only-with-eviction log of conversions, newest first,
// bounded to a fixed capacity and persisted as a whole blob on every
// mutation. Persistence failures are swallowed: usability wins over
// durability, so the store degrades to in-memory history.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	key      string
	capacity int
	entries  []domain.ConversionHistoryEntry
	logger   *slog.Logger
}

// New creates a Store backed by the given key-value port.
func New(store kv.Store, cfg *config.History, logger *slog.Logger) *Store {
	return &Store{
		kv:       store,
		key:      cfg.Key,
		capacity: cfg.Capacity,
		logger:   logger,
	}
}

// Load reads persisted history once at startup. A missing blob or a parse
// failure both leave the history empty without surfacing an error.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("failed to read persisted history", "error", err)
		return
	}

	var entries []domain.ConversionHistoryEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		s.logger.Warn("persisted history is corrupt, starting empty", "error", err)
		return
	}
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
}

// Append prepends an entry, truncates to capacity and persists the full
// resulting sequence.
func (s *Store) Append(ctx context.Context, entry domain.ConversionHistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.ConversionHistoryEntry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	if len(next) > s.capacity {
		next = next[:s.capacity]
	}
	s.entries = next
	s.persist(ctx)
}

// Clear empties the sequence and erases persisted state.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.Warn("failed to erase persisted history", "error", err)
	}
}

// List returns a snapshot of the current sequence, newest first.
func (s *Store) List() []domain.ConversionHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ConversionHistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) persist(ctx context.Context) {
	blob, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Warn("failed to encode history", "error", err)
		return
	}
	if err := s.kv.Set(ctx, s.key, blob); err != nil {
		s.logger.Warn("failed to persist history", "error", err)
	}
}
