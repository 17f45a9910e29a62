package sqlite

import (
	"context"
	"fmt"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// ListSeals returns a seal per path the user has been active on
func (s *Store) ListSeals(ctx context.Context, userID string) ([]domain.Seal, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT user_id, path_id, total_days_active, updated_at
		FROM seals WHERE user_id = ? ORDER BY path_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list seals: %w", err)
	}
	defer rows.Close()

	var seals []domain.Seal
	for rows.Next() {
		var seal domain.Seal
		var updatedAt int64
		if err := rows.Scan(&seal.UserID, &seal.PathID, &seal.TotalDaysActive, &updatedAt); err != nil {
			return nil, fmt.Errorf("list seals: %w", err)
		}
		seal.UpdatedAt = fromMillis(updatedAt)
		seals = append(seals, seal)
	}
	return seals, rows.Err()
}

// AddSealDays adds days to the path's seal, creating it on first use. The total never goes below zero.
func (s *Store) AddSealDays(ctx context.Context, userID, pathID string, days int) (*domain.Seal, error) {
	var seal domain.Seal
	var updatedAt int64
	err := s.sqlDB.QueryRowContext(ctx, `
		INSERT INTO seals (user_id, path_id, total_days_active, updated_at)
		VALUES (?1, ?2, MAX(?3, 0), ?4)
		ON CONFLICT (user_id, path_id) DO UPDATE SET
			total_days_active = MAX(seals.total_days_active + ?3, 0),
			updated_at        = ?4
		RETURNING user_id, path_id, total_days_active, updated_at`,
		userID, pathID, days, toMillis(timeNow())).
		Scan(&seal.UserID, &seal.PathID, &seal.TotalDaysActive, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("add seal days: %w", err)
	}
	seal.UpdatedAt = fromMillis(updatedAt)
	return &seal, nil
}
