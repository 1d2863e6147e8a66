// Package sqlite persists the terminal session in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/hiring-portal/internal/storage/sqlite/migrations"
	"github.com/jonathan/hiring-portal/internal/types"
	_ "modernc.org/sqlite"
)

// slot is the single row the local session lives in.
const slot = "current"

// Store implements session.Persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates the session database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the stored session, or nil when there is none.
func (s *Store) Load(ctx context.Context) (*types.Session, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT user_id, email, name, role FROM sessions WHERE slot = ?`, slot)

	var sess types.Session
	var role string
	if err := row.Scan(&sess.UserID, &sess.Email, &sess.Name, &role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess.Role = types.Role(role)
	return &sess, nil
}

// Save replaces the stored session.
func (s *Store) Save(ctx context.Context, sess types.Session) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO sessions (slot, user_id, email, name, role, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   user_id = excluded.user_id,
		   email = excluded.email,
		   name = excluded.name,
		   role = excluded.role,
		   saved_at = excluded.saved_at`,
		slot, sess.UserID, sess.Email, sess.Name, string(sess.Role), s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sessions WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
