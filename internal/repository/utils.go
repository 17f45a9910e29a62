package repository

import (
	"context"

	"github.com/osse101/Ascendant_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error.
// Implementations return nil when the transaction was already committed.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
