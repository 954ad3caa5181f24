//go:build sqlite

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // CGO-less SQLite driver

	"subnetter/internal/subnet"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS calculations (
    id         TEXT PRIMARY KEY,
    input      TEXT NOT NULL,
    mask       TEXT,
    result     TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at DESC);
`

// SQLiteStore is a SQLite-backed implementation of Store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the history database at dsn.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, e Entry) (Entry, error) {
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
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, input, mask, result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.ID,
		e.Input,
		sql.NullString{String: e.Mask, Valid: e.Mask != ""},
		string(result),
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultKeep
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input, mask, result, created_at
		FROM calculations
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			mask    sql.NullString
			result  string
			created string
		)
		if err := rows.Scan(&e.ID, &e.Input, &mask, &result, &created); err != nil {
			return nil, err
		}
		e.Mask = mask.String
		if err := json.Unmarshal([]byte(result), &e.Result); err != nil {
			e.Result = subnet.Result{}
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = ts
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
