package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

const identityColumns = `identity_id, user_id, path_key, level, xp, xp_to_next_level, stage, streak, revision, created_at, updated_at`

func scanIdentity(row interface{ Scan(...any) error }) (*domain.Identity, error) {
	var i domain.Identity
	var stage string
	var createdAt, updatedAt int64
	if err := row.Scan(&i.ID, &i.UserID, &i.PathKey, &i.Level, &i.XP, &i.XPToNextLevel, &stage, &i.Streak, &i.Revision, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	i.Stage = domain.EvolutionStage(stage)
	i.CreatedAt = fromMillis(createdAt)
	i.UpdatedAt = fromMillis(updatedAt)
	return &i, nil
}

// CreateIdentity inserts a new path identity
func (s *Store) CreateIdentity(ctx context.Context, identity domain.Identity) error {
	now := toMillis(timeNow())
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO identities (identity_id, user_id, path_key, level, xp, xp_to_next_level, stage, streak, revision, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		identity.ID, identity.UserID, identity.PathKey, identity.Level, identity.XP, identity.XPToNextLevel,
		string(identity.Stage), identity.Streak, identity.Revision, now, now)
	if isConstraintUnique(err) {
		return fmt.Errorf("%w: %s", domain.ErrPathAlreadySelected, identity.PathKey)
	}
	if err != nil {
		return fmt.Errorf("create identity: %w", err)
	}
	return nil
}

// GetIdentity returns one of the user's identities
func (s *Store) GetIdentity(ctx context.Context, userID, identityID string) (*domain.Identity, error) {
	identity, err := scanIdentity(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM identities WHERE user_id = ? AND identity_id = ?`, userID, identityID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrIdentityNotFound, identityID)
	}
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return identity, nil
}

// ListIdentities returns the user's identities oldest first
func (s *Store) ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+identityColumns+` FROM identities WHERE user_id = ? ORDER BY created_at, identity_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()

	var identities []domain.Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("list identities: %w", err)
		}
		identities = append(identities, *identity)
	}
	return identities, rows.Err()
}

// UpdateIdentity writes the non-nil fields of update. A stale revision is dropped silently.
func (s *Store) UpdateIdentity(ctx context.Context, identityID string, update domain.IdentityUpdate) error {
	var stage *string
	if update.Stage != nil {
		v := string(*update.Stage)
		stage = &v
	}
	res, err := s.sqlDB.ExecContext(ctx, `
		UPDATE identities SET
			level            = COALESCE(?, level),
			xp               = COALESCE(?, xp),
			xp_to_next_level = COALESCE(?, xp_to_next_level),
			stage            = COALESCE(?, stage),
			streak           = COALESCE(?, streak),
			revision         = COALESCE(?, revision),
			updated_at       = ?
		WHERE identity_id = ? AND (? IS NULL OR revision <= ?)`,
		update.Level, update.XP, update.XPToNextLevel, stage, update.Streak, update.Revision, toMillis(timeNow()),
		identityID, update.Revision, update.Revision)
	if err != nil {
		return fmt.Errorf("update identity: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists bool
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM identities WHERE identity_id = ?)`, identityID).Scan(&exists); err != nil {
		return fmt.Errorf("update identity: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrIdentityNotFound, identityID)
	}
	return nil
}
