// Package history records status transitions in SQLite so operators can
// inspect what happened between notifications. It performs no analysis.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/HerbHall/dockpulse/internal/monitor"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// Compile-time interface guard.
var _ monitor.Recorder = (*Store)(nil)

// Store provides access to the transition history database.
type Store struct {
	db *sql.DB
	mu sync.Mutex // Serialize migrations
}

// Open opens (or creates) the history database at the given path, applies
// recommended pragmas, and runs pending migrations. Use ":memory:" for an
// in-memory database in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection. WAL enables concurrent readers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	// Apply recommended pragmas (modernc.org/sqlite requires SQL statements, not DSN params).
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts all transitions of one cycle in a single transaction.
func (s *Store) Record(ctx context.Context, batch []monitor.Transition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	for _, t := range batch {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transitions (id, container, kind, from_status, to_status, observed_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), t.Container, string(t.Kind), string(t.From), string(t.To), t.At,
		)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
			}
			return fmt.Errorf("insert transition: %w", err)
		}
	}

	return tx.Commit()
}

// ListByContainer returns the most recent transitions for a container,
// newest first. If limit <= 0, defaults to 100.
func (s *Store) ListByContainer(ctx context.Context, container string, limit int) ([]monitor.Transition, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT container, kind, from_status, to_status, observed_at
		FROM transitions WHERE container = ? ORDER BY observed_at DESC LIMIT ?`,
		container, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var transitions []monitor.Transition
	for rows.Next() {
		var t monitor.Transition
		var kind, from, to string
		if err := rows.Scan(&t.Container, &kind, &from, &to, &t.At); err != nil {
			return nil, fmt.Errorf("scan transition row: %w", err)
		}
		t.Kind = monitor.Kind(kind)
		t.From = monitor.Status(from)
		t.To = monitor.Status(to)
		transitions = append(transitions, t)
	}
	return transitions, rows.Err()
}

// DeleteBefore deletes transitions observed before the given time.
// Returns the number of rows deleted.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM transitions WHERE observed_at < ?`,
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("delete old transitions: %w", err)
	}
	return result.RowsAffected()
}

// migration is a single versioned schema change.
type migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

func migrations() []migration {
	return []migration{
		{
			Version:     1,
			Description: "create transitions table",
			Up: func(tx *sql.Tx) error {
				stmts := []string{
					`CREATE TABLE IF NOT EXISTS transitions (
						id TEXT PRIMARY KEY,
						container TEXT NOT NULL,
						kind TEXT NOT NULL,
						from_status TEXT NOT NULL DEFAULT '',
						to_status TEXT NOT NULL,
						observed_at DATETIME NOT NULL
					)`,
					`CREATE INDEX IF NOT EXISTS idx_transitions_container_time ON transitions(container, observed_at)`,
					`CREATE INDEX IF NOT EXISTS idx_transitions_time ON transitions(observed_at)`,
				}
				for _, stmt := range stmts {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

// migrate runs pending migrations, tracked in a _migrations table.
func (s *Store) migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	for _, m := range migrations() {
		var count int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM _migrations WHERE version = ?", m.Version,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		if err := s.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := m.Up(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO _migrations (version, description) VALUES (?, ?)",
		m.Version, m.Description,
	); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
