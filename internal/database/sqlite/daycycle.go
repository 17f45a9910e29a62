package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// ClaimDayAdvance moves the user's last advanced day forward to day, once.
// Days are stored as YYYY-MM-DD so text comparison orders them.
func (s *Store) ClaimDayAdvance(ctx context.Context, userID string, day time.Time) (bool, error) {
	res, err := s.sqlDB.ExecContext(ctx, `
		UPDATE profiles SET last_advanced_day = ?, updated_at = ?
		WHERE user_id = ? AND (last_advanced_day IS NULL OR last_advanced_day < ?)`,
		domain.DayFor(day).Format(domain.DayLayout), toMillis(timeNow()), userID, domain.DayFor(day).Format(domain.DayLayout))
	if err != nil {
		return false, fmt.Errorf("claim day advance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim day advance: %w", err)
	}
	return n == 1, nil
}

// ReleaseDayAdvance steps the user's last advanced day back from day, if day still holds it
func (s *Store) ReleaseDayAdvance(ctx context.Context, userID string, day time.Time) error {
	day = domain.DayFor(day)
	_, err := s.sqlDB.ExecContext(ctx, `
		UPDATE profiles SET last_advanced_day = ?, updated_at = ?
		WHERE user_id = ? AND last_advanced_day = ?`,
		day.AddDate(0, 0, -1).Format(domain.DayLayout), toMillis(timeNow()), userID, day.Format(domain.DayLayout))
	if err != nil {
		return fmt.Errorf("release day advance: %w", err)
	}
	return nil
}
