package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// ListSeals returns a seal per path the user has been active on
func (s *Store) ListSeals(ctx context.Context, userID string) ([]domain.Seal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, path_id, total_days_active, updated_at
		FROM seals WHERE user_id = $1 ORDER BY path_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSeals, err)
	}
	defer rows.Close()

	var seals []domain.Seal
	for rows.Next() {
		var seal domain.Seal
		if err := rows.Scan(&seal.UserID, &seal.PathID, &seal.TotalDaysActive, &seal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSeals, err)
		}
		seals = append(seals, seal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSeals, err)
	}
	return seals, nil
}

// AddSealDays adds days to the path's seal, creating it on first use. The total never goes below zero.
func (s *Store) AddSealDays(ctx context.Context, userID, pathID string, days int) (*domain.Seal, error) {
	query := `
		INSERT INTO seals (user_id, path_id, total_days_active, updated_at)
		VALUES ($1, $2, GREATEST($3, 0), NOW())
		ON CONFLICT (user_id, path_id) DO UPDATE SET
			total_days_active = GREATEST(seals.total_days_active + $3, 0),
			updated_at        = NOW()
		RETURNING user_id, path_id, total_days_active, updated_at
	`
	var seal domain.Seal
	err := s.db.QueryRow(ctx, query, userID, pathID, days).
		Scan(&seal.UserID, &seal.PathID, &seal.TotalDaysActive, &seal.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAddSeal, err)
	}
	return &seal, nil
}
