package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createSettingsTableSQL = `
    CREATE TABLE IF NOT EXISTS settings (
        key   TEXT PRIMARY KEY,
        value BOOLEAN NOT NULL
    )
`
	getSettingSQL = `SELECT value FROM settings WHERE key = $1`
	setSettingSQL = `
    INSERT INTO settings (key, value) VALUES ($1, $2)
    ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
`
)

// PostgresStore keeps flags in a single settings table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects and creates the table when missing.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect settings database: %w", err)
	}

	if _, err := pool.Exec(ctx, createSettingsTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key Key) (bool, error) {
	var value bool
	err := s.pool.QueryRow(ctx, getSettingSQL, string(key)).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key Key, value bool) error {
	if _, err := s.pool.Exec(ctx, setSettingSQL, string(key), value); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Close releases the pool resources.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
