// Package sqlite persists network snapshots to an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mecore/internal/infra/persistence"
	"mecore/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var _ domain.SnapshotStore = (*Store)(nil)

// DefaultPath is used when no database path is configured.
const DefaultPath = "mecore.db"

// Store writes each snapshot bucket as a JSON blob row of a single table.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) the database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Load reads every bucket row back into a snapshot.
func (s *Store) Load(ctx context.Context) (domain.NetworkSnapshot, bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return domain.NetworkSnapshot{}, false, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var raws []persistence.Row
	for rows.Next() {
		var r persistence.Row
		if err := rows.Scan(&r.Bucket, &r.Payload); err != nil {
			return domain.NetworkSnapshot{}, false, fmt.Errorf("scan: %w", err)
		}
		raws = append(raws, r)
	}
	if err := rows.Err(); err != nil {
		return domain.NetworkSnapshot{}, false, fmt.Errorf("iterate state: %w", err)
	}
	if len(raws) == 0 {
		return domain.NetworkSnapshot{}, false, nil
	}
	snapshot, err := persistence.DecodeBuckets(raws)
	if err != nil {
		return domain.NetworkSnapshot{}, false, err
	}
	return snapshot, true, nil
}

// Save upserts every bucket inside one transaction.
func (s *Store) Save(ctx context.Context, snapshot domain.NetworkSnapshot) (retErr error) {
	rows, err := persistence.EncodeBuckets(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, r.Bucket, r.Payload); err != nil {
			return fmt.Errorf("upsert %s: %w", r.Bucket, err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
