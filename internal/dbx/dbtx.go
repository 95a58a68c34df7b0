// Package dbx runs batches of statements against the local sqlite store,
// all or nothing.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer is what a batch needs from *sql.DB or *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WithTx runs fn inside a transaction. An error or a panic from fn rolls the
// transaction back; panics are re-raised after the rollback.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx Execer) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

// Statement is one exec of a batch. Label prefixes its error.
type Statement struct {
	Label string
	Query string
	Args  []any
}

// ExecAll runs stmts in order in one transaction. The first failure aborts
// the batch and nothing is kept.
func ExecAll(ctx context.Context, db *sql.DB, stmts ...Statement) error {
	if len(stmts) == 0 {
		return nil
	}
	return WithTx(ctx, db, func(ctx context.Context, tx Execer) error {
		for _, s := range stmts {
			if _, err := tx.ExecContext(ctx, s.Query, s.Args...); err != nil {
				return fmt.Errorf("%s: %w", s.Label, err)
			}
		}
		return nil
	})
}
