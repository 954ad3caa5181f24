//go:build postgres

package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"subnetter/internal/subnet"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS calculations (
    id         UUID PRIMARY KEY,
    input      TEXT NOT NULL,
    mask       TEXT,
    result     JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at DESC);
`

// PostgresStore is a PostgreSQL-backed implementation of Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database at dsn and ensures the schema.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	result, err := json.Marshal(e.Result)
	if err != nil {
		return Entry{}, err
	}
	var mask *string
	if e.Mask != "" {
		mask = &e.Mask
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO calculations (id, input, mask, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.Input, mask, result, e.CreatedAt)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultKeep
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, input, mask, result, created_at
		FROM calculations
		ORDER BY created_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e      Entry
			mask   *string
			result []byte
		)
		if err := rows.Scan(&e.ID, &e.Input, &mask, &result, &e.CreatedAt); err != nil {
			return nil, err
		}
		if mask != nil {
			e.Mask = *mask
		}
		if err := json.Unmarshal(result, &e.Result); err != nil {
			e.Result = subnet.Result{}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
