package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

const identityColumns = `identity_id, user_id, path_key, level, xp, xp_to_next_level, stage, streak, revision, created_at, updated_at`

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var i domain.Identity
	var stage string
	if err := row.Scan(&i.ID, &i.UserID, &i.PathKey, &i.Level, &i.XP, &i.XPToNextLevel, &stage, &i.Streak, &i.Revision, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	i.Stage = domain.EvolutionStage(stage)
	return &i, nil
}

// CreateIdentity inserts a new path identity. A second identity on the same path fails with ErrPathAlreadySelected.
func (s *Store) CreateIdentity(ctx context.Context, identity domain.Identity) error {
	query := `
		INSERT INTO identities (identity_id, user_id, path_key, level, xp, xp_to_next_level, stage, streak, revision)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.Exec(ctx, query, identity.ID, identity.UserID, identity.PathKey, identity.Level,
		identity.XP, identity.XPToNextLevel, string(identity.Stage), identity.Streak, identity.Revision)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrPathAlreadySelected, identity.PathKey)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateIdentity, err)
	}
	return nil
}

// GetIdentity returns one of the user's identities
func (s *Store) GetIdentity(ctx context.Context, userID, identityID string) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE user_id = $1 AND identity_id = $2`
	identity, err := scanIdentity(s.db.QueryRow(ctx, query, userID, identityID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrIdentityNotFound, identityID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetIdentity, err)
	}
	return identity, nil
}

// ListIdentities returns the user's identities oldest first
func (s *Store) ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE user_id = $1 ORDER BY created_at, identity_id`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListIdentities, err)
	}
	defer rows.Close()

	var identities []domain.Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListIdentities, err)
		}
		identities = append(identities, *identity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListIdentities, err)
	}
	return identities, nil
}

// UpdateIdentity writes the non-nil fields of update. When update carries a revision older
// than the stored one the write is dropped without error.
func (s *Store) UpdateIdentity(ctx context.Context, identityID string, update domain.IdentityUpdate) error {
	var stage *string
	if update.Stage != nil {
		v := string(*update.Stage)
		stage = &v
	}
	query := `
		UPDATE identities SET
			level            = COALESCE($2, level),
			xp               = COALESCE($3, xp),
			xp_to_next_level = COALESCE($4, xp_to_next_level),
			stage            = COALESCE($5, stage),
			streak           = COALESCE($6, streak),
			revision         = COALESCE($7, revision),
			updated_at       = NOW()
		WHERE identity_id = $1 AND ($7::BIGINT IS NULL OR revision <= $7)
	`
	tag, err := s.db.Exec(ctx, query, identityID, update.Level, update.XP, update.XPToNextLevel, stage, update.Streak, update.Revision)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateIdentity, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM identities WHERE identity_id = $1)`, identityID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateIdentity, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrIdentityNotFound, identityID)
	}
	return nil
}
