package repository

import (
	"context"
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// Progress defines the interface for daily progress persistence, keyed by (user, path, day)
type Progress interface {
	// GetDailyProgress returns domain.ErrDayNotFound when nothing was stored for the day
	GetDailyProgress(ctx context.Context, userID, pathID string, day time.Time) (*domain.DailyProgress, error)
	UpsertDailyProgress(ctx context.Context, progress domain.DailyProgress) error
}
