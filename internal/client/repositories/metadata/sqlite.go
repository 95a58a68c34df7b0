package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/plana/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, true, nil
}

// SetMany upserts values in key order.
func (r *SQLiteRepository) SetMany(ctx context.Context, values map[string]string) error {
	keys := slices.Sorted(maps.Keys(values))
	stmts := make([]dbx.Statement, 0, len(keys))
	for _, key := range keys {
		stmts = append(stmts, dbx.Statement{
			Label: fmt.Sprintf("failed to set metadata[%s]", key),
			Query: `INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			Args: []any{key, values[key]},
		})
	}
	return dbx.ExecAll(ctx, r.db, stmts...)
}

func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	stmts := make([]dbx.Statement, 0, len(keys))
	for _, key := range keys {
		stmts = append(stmts, dbx.Statement{
			Label: fmt.Sprintf("failed to delete metadata[%s]", key),
			Query: `DELETE FROM metadata WHERE key = ?`,
			Args:  []any{key},
		})
	}
	return dbx.ExecAll(ctx, r.db, stmts...)
}
