// Package memory provides an in-process snapshot store for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"mecore/internal/infra/persistence"
	"mecore/pkg/domain"
)

var _ domain.SnapshotStore = (*Store)(nil)

// Store keeps the last saved snapshot in its encoded form so callers never
// share maps with it.
type Store struct {
	mu   sync.RWMutex
	rows []persistence.Row
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{}
}

// Save replaces the stored snapshot.
func (s *Store) Save(ctx context.Context, snapshot domain.NetworkSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rows, err := persistence.EncodeBuckets(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
	return nil
}

// Load returns the stored snapshot.
func (s *Store) Load(ctx context.Context) (domain.NetworkSnapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.NetworkSnapshot{}, false, err
	}
	s.mu.RLock()
	rows := s.rows
	s.mu.RUnlock()
	if rows == nil {
		return domain.NetworkSnapshot{}, false, nil
	}
	snapshot, err := persistence.DecodeBuckets(rows)
	if err != nil {
		return domain.NetworkSnapshot{}, false, err
	}
	return snapshot, true, nil
}
