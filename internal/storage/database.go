package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sevigo/wizpro/internal/core"
)

const queryTimeout = 5 * time.Second

// PostgresStore implements core.Store on the editor_state table. Each profile
// sees its own keys.
type PostgresStore struct {
	db      *sqlx.DB
	profile string
	logger  *slog.Logger
}

var _ core.Store = (*PostgresStore)(nil)

// NewPostgresStore creates a store for profile. The schema is created by the
// db package migrations.
func NewPostgresStore(db *sqlx.DB, profile string, logger *slog.Logger) *PostgresStore {
	if profile == "" {
		profile = "default"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, profile: profile, logger: logger}
}

// Get retrieves a value by key. Query failures are logged and reported as a
// missing key.
func (s *PostgresStore) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var value string
	err := s.db.GetContext(ctx, &value,
		`SELECT value FROM editor_state WHERE profile = $1 AND key = $2`, s.profile, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to read editor state", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

// Set inserts or replaces a value.
func (s *PostgresStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	query := `
		INSERT INTO editor_state (profile, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (profile, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, query, s.profile, key, value); err != nil {
		return fmt.Errorf("failed to save %q: %w", key, err)
	}
	return nil
}
