// Package storage owns the durable expense ledger: a single SQLite table,
// an idempotent additive schema check, and the owner-scoped query set.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store is the SQLite-backed ledger. Every operation acquires a pooled
// connection for its duration only; no connection is held across calls.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger database at dbPath and ensures
// the schema. A schema failure here is fatal for the whole system: the store
// refuses to exist without a valid schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// EnsureSchema creates the expenses table if absent and adds the additive
// category column when an older database lacks it. Idempotent and
// non-destructive, so it is safe to re-invoke at any time.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const createTable = `
		CREATE TABLE IF NOT EXISTS expenses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			item TEXT NOT NULL,
			amount INTEGER NOT NULL,
			date TEXT NOT NULL
		)`
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create expenses table: %w", err)
	}

	cols, err := s.tableColumns(ctx, "expenses")
	if err != nil {
		return fmt.Errorf("inspect expenses columns: %w", err)
	}

	if _, ok := cols["category"]; !ok {
		// Additive only: existing rows keep NULL, historical totals stay intact.
		if _, err := s.db.ExecContext(ctx, "ALTER TABLE expenses ADD COLUMN category TEXT"); err != nil {
			return fmt.Errorf("add category column: %w", err)
		}
	}

	return nil
}

func (s *Store) tableColumns(ctx context.Context, table string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]struct{})
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = struct{}{}
	}
	return cols, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
