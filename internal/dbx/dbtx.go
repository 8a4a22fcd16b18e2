// Package dbx holds the database plumbing shared by the prediction store:
// a handle type that covers both the pool and an open transaction,
// transaction scoping, and detection of the SQL engine behind a URL.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is what repositories query through. *sql.DB and *sql.Tx both satisfy
// it, so one repository type serves pooled reads and transactional writes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a single transaction on db. The transaction commits
// only when fn returns nil; an error from fn, or a panic, leaves nothing
// behind. A panic keeps unwinding after the rollback.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return repomanager.Predictions(tx).Create(ctx, p)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	done = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
