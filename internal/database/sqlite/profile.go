package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

const profileColumns = `user_id, username, coins, stars, stat_body, stat_mind, stat_soul, stat_will, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	var p domain.Profile
	var body, mind, soul, will int
	var createdAt, updatedAt int64
	if err := row.Scan(&p.UserID, &p.Username, &p.Coins, &p.Stars, &body, &mind, &soul, &will, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Stats = map[domain.StatDimension]int{
		domain.StatBody: body,
		domain.StatMind: mind,
		domain.StatSoul: soul,
		domain.StatWill: will,
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return &p, nil
}

func getProfile(ctx context.Context, q querier, userID string) (*domain.Profile, error) {
	p, err := scanProfile(q.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func updateProfile(ctx context.Context, q querier, userID string, u domain.ProfileUpdate, now int64) (*domain.Profile, error) {
	query := `
		UPDATE profiles SET
			username   = COALESCE(?, username),
			coins      = MAX(coins + ?, 0),
			stars      = MAX(stars + ?, 0),
			stat_body  = MAX(stat_body + ?, 0),
			stat_mind  = MAX(stat_mind + ?, 0),
			stat_soul  = MAX(stat_soul + ?, 0),
			stat_will  = MAX(stat_will + ?, 0),
			updated_at = ?
		WHERE user_id = ?
		RETURNING ` + profileColumns
	p, err := scanProfile(q.QueryRowContext(ctx, query, u.Username, u.CoinsDelta, u.StarsDelta,
		u.StatDeltas[domain.StatBody], u.StatDeltas[domain.StatMind], u.StatDeltas[domain.StatSoul], u.StatDeltas[domain.StatWill],
		now, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// GetProfile returns the user's profile
func (s *Store) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return getProfile(ctx, s.sqlDB, userID)
}

// CreateProfile inserts the profile unless it exists and returns the stored row
func (s *Store) CreateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error) {
	now := toMillis(timeNow())
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO profiles (user_id, username, coins, stars, stat_body, stat_mind, stat_soul, stat_will, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		profile.UserID, profile.Username, profile.Coins, profile.Stars,
		profile.Stats[domain.StatBody], profile.Stats[domain.StatMind], profile.Stats[domain.StatSoul], profile.Stats[domain.StatWill],
		now, now)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return s.GetProfile(ctx, profile.UserID)
}

// UpdateProfile applies relative deltas in a single statement
func (s *Store) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	return updateProfile(ctx, s.sqlDB, userID, update, toMillis(timeNow()))
}

// ListUserIDs returns every user with a profile
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT user_id FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
