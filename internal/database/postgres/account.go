package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ResetAccount wipes every identity, progress row, seal and item the user owns and zeroes the profile.
// The profile row itself survives so the user keeps their name.
func (s *Store) ResetAccount(ctx context.Context, userID string) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		for _, table := range []string{"daily_progress", "seals", "inventory_items", "identities"} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
				return fmt.Errorf(ErrMsgFailedToResetAccountFmt+": %w", table, err)
			}
		}
		_, err := tx.Exec(ctx, `
			UPDATE profiles SET coins = 0, stars = 0, stat_body = 0, stat_mind = 0, stat_soul = 0, stat_will = 0, updated_at = NOW()
			WHERE user_id = $1
		`, userID)
		if err != nil {
			return fmt.Errorf(ErrMsgFailedToResetAccountFmt+": %w", "profiles", err)
		}
		return nil
	})
}
