package searchlog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSearchesTable = `CREATE TABLE IF NOT EXISTS searches (
	id         UUID PRIMARY KEY,
	type       TEXT NOT NULL,
	query      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// duplicate ids come from retried queue tasks and are ignored
const insertSearch = `INSERT INTO searches (id, type, query, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

// PostgresStore inserts records into the searches table.
type PostgresStore struct {
	db execer
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the searches table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createSearchesTable); err != nil {
		return fmt.Errorf("failed to create searches table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, insertSearch, r.ID, r.Type, r.Query, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert search '%s': %w", r.ID, err)
	}
	return nil
}
