package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// ResetAccount wipes the user's identities, progress, seals and items and zeroes the profile
func (s *Store) ResetAccount(ctx context.Context, userID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"daily_progress", "seals", "inventory_items", "identities"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
				return fmt.Errorf("reset account (%s): %w", table, err)
			}
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE profiles SET coins = 0, stars = 0, stat_body = 0, stat_mind = 0, stat_soul = 0, stat_will = 0, updated_at = ?
			WHERE user_id = ?`, toMillis(timeNow()), userID)
		if err != nil {
			return fmt.Errorf("reset account (profiles): %w", err)
		}
		return nil
	})
}
