package repository

import (
	"context"
	"time"
)

// DayCycle records which calendar day each user's day cycle last ran for
type DayCycle interface {
	// ClaimDayAdvance marks day as advanced for userID. It reports false when the user
	// has already advanced to day or later, so a cycle runs at most once per day.
	ClaimDayAdvance(ctx context.Context, userID string, day time.Time) (bool, error)

	// ReleaseDayAdvance undoes a claim on day so the cycle can run again. It is a no-op
	// unless day is the user's last advanced day.
	ReleaseDayAdvance(ctx context.Context, userID string, day time.Time) error
}
