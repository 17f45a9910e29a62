package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// ClaimDayAdvance moves the user's last advanced day forward to day, once
func (s *Store) ClaimDayAdvance(ctx context.Context, userID string, day time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE profiles SET last_advanced_day = $2, updated_at = NOW()
		WHERE user_id = $1 AND (last_advanced_day IS NULL OR last_advanced_day < $2)
	`, userID, domain.DayFor(day))
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToClaimDay, err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseDayAdvance steps the user's last advanced day back from day, if day still holds it
func (s *Store) ReleaseDayAdvance(ctx context.Context, userID string, day time.Time) error {
	day = domain.DayFor(day)
	_, err := s.db.Exec(ctx, `
		UPDATE profiles SET last_advanced_day = $3, updated_at = NOW()
		WHERE user_id = $1 AND last_advanced_day = $2
	`, userID, day, day.AddDate(0, 0, -1))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToReleaseDay, err)
	}
	return nil
}
