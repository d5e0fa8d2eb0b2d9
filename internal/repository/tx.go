package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
)

// Bounded backoff for write-lock contention. Concurrent writers queue behind
// SQLite's single write lock; after maxLockWait the caller gets a Repository
// error and may retry on its own terms.
const (
	lockRetryBase = 50 * time.Millisecond
	maxLockWait   = 3 * time.Second
)

// withTx runs fn inside a transaction, committing on success and rolling back
// on any error so no partial mutation can persist. Lock contention is retried
// with fibonacci backoff up to maxLockWait, then surfaced as ErrRepositoryBusy.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	backoff := retry.WithMaxDuration(maxLockWait, retry.NewFibonacci(lockRetryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := runTx(ctx, db, fn)
		if isLocked(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if isLocked(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrRepositoryBusy, err)
	}
	return err
}

func runTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit failed: %v", apperrors.ErrRepositoryWrite, err)
	}
	return nil
}

// isLocked reports whether err is SQLite write-lock contention
// (SQLITE_BUSY/SQLITE_LOCKED from the modernc driver).
func isLocked(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
