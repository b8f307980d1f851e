package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jewelrender/jewelrender/internal/models"
)

// SQLiteStore persists catalog snapshots in a local SQLite database. It is
// the first "real" backend behind the Store interface; snapshots are kept as
// JSON in a single table keyed by user, preserving the last-write-wins
// contract of the memory store.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite initializes or connects to the catalog database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS catalog_snapshots (
        user_id      TEXT PRIMARY KEY,
        snapshot     TEXT NOT NULL,
        last_updated TEXT NOT NULL
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create catalog table: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, userID string, snapshot *models.CatalogSnapshot) error {
	snapshot.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO catalog_snapshots (user_id, snapshot, last_updated)
         VALUES (?, ?, ?)
         ON CONFLICT(user_id) DO UPDATE SET
            snapshot = excluded.snapshot,
            last_updated = excluded.last_updated`,
		userID,
		string(data),
		snapshot.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, userID string) (*models.CatalogSnapshot, error) {
	var data string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT snapshot FROM catalog_snapshots WHERE user_id = ?`,
		userID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}

	var snapshot models.CatalogSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, userID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT 1 FROM catalog_snapshots WHERE user_id = ?`,
		userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check snapshot: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_snapshots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
