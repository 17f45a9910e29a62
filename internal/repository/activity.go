package repository

import (
	"context"
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// ActivityLog persists the event history
type ActivityLog interface {
	// LogActivity appends an entry. ID is assigned by the store.
	LogActivity(ctx context.Context, entry domain.ActivityEntry) error
	// ListActivity returns matching entries, newest first
	ListActivity(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityEntry, error)
	// PurgeActivityBefore deletes entries created before cutoff and reports how many
	PurgeActivityBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
