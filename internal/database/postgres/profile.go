package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

const profileColumns = `user_id, username, coins, stars, stat_body, stat_mind, stat_soul, stat_will, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var body, mind, soul, will int
	if err := row.Scan(&p.UserID, &p.Username, &p.Coins, &p.Stars, &body, &mind, &soul, &will, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Stats = map[domain.StatDimension]int{
		domain.StatBody: body,
		domain.StatMind: mind,
		domain.StatSoul: soul,
		domain.StatWill: will,
	}
	return &p, nil
}

func getProfile(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanProfile(q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProfile, err)
	}
	return p, nil
}

func updateProfile(ctx context.Context, q querier, userID string, u domain.ProfileUpdate) (*domain.Profile, error) {
	query := `
		UPDATE profiles SET
			username   = COALESCE($2, username),
			coins      = GREATEST(coins + $3, 0),
			stars      = GREATEST(stars + $4, 0),
			stat_body  = GREATEST(stat_body + $5, 0),
			stat_mind  = GREATEST(stat_mind + $6, 0),
			stat_soul  = GREATEST(stat_soul + $7, 0),
			stat_will  = GREATEST(stat_will + $8, 0),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns
	p, err := scanProfile(q.QueryRow(ctx, query, userID, u.Username, u.CoinsDelta, u.StarsDelta,
		u.StatDeltas[domain.StatBody], u.StatDeltas[domain.StatMind], u.StatDeltas[domain.StatSoul], u.StatDeltas[domain.StatWill]))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProfile, err)
	}
	return p, nil
}

// GetProfile returns the user's profile
func (s *Store) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return getProfile(ctx, s.db, userID, false)
}

// CreateProfile inserts the profile unless it exists and returns the stored row
func (s *Store) CreateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, username, coins, stars, stat_body, stat_mind, stat_soul, stat_will)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := s.db.Exec(ctx, query, profile.UserID, profile.Username, profile.Coins, profile.Stars,
		profile.Stats[domain.StatBody], profile.Stats[domain.StatMind], profile.Stats[domain.StatSoul], profile.Stats[domain.StatWill])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateProfile, err)
	}
	return s.GetProfile(ctx, profile.UserID)
}

// UpdateProfile applies relative deltas in a single statement
func (s *Store) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	return updateProfile(ctx, s.db, userID, update)
}

// ListUserIDs returns every user with a profile
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT user_id FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUsers, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUsers, err)
	}
	return ids, nil
}
