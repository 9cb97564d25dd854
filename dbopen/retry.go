package dbopen

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// IsBusy reports whether err looks like an SQLITE_BUSY or SQLITE_LOCKED
// condition surfaced by the driver.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "SQLITE_LOCKED")
}

// RunTx runs fn inside a transaction, retrying on busy errors with a short
// backoff. The transaction is rolled back when fn returns an error.
func RunTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	const attempts = 5
	backoff := 50 * time.Millisecond

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			if IsBusy(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("begin tx: %w", err)
		}

		if err := fn(tx); err != nil {
			tx.Rollback()
			if IsBusy(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if IsBusy(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	}
	return fmt.Errorf("tx retries exhausted: %w", lastErr)
}
