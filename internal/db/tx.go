package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// WithTx runs fn inside a transaction. The transaction commits when fn returns
// nil and is rolled back otherwise, including when fn panics.
func WithTx(ctx context.Context, db *sql.DB, logger *slog.Logger, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx, logger)
			panic(p)
		}
		if err != nil {
			rollback(ctx, tx, logger)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx *sql.Tx, logger *slog.Logger) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(ctx, "rollback failed", "error", err)
	}
}
