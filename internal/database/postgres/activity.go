package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// LogActivity appends an event to event_log
func (s *Store) LogActivity(ctx context.Context, entry domain.ActivityEntry) error {
	var userID *string
	if entry.UserID != "" {
		userID = &entry.UserID
	}
	payload := entry.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO event_log (event_type, user_id, version, payload, created_at)
		VALUES ($1, $2, $3, $4::jsonb, $5)
	`, entry.EventType, userID, entry.Version, string(payload), createdAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogActivity, err)
	}
	return nil
}

// ListActivity returns matching entries, newest first
func (s *Store) ListActivity(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityEntry, error) {
	var where []string
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.UserID != "" {
		add("user_id = $%d", filter.UserID)
	}
	if filter.EventType != "" {
		add("event_type = $%d", filter.EventType)
	}
	if filter.Since != nil {
		add("created_at >= $%d", *filter.Since)
	}

	query := `SELECT id, event_type, COALESCE(user_id, ''), version, payload::text, created_at FROM event_log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListActivity, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ActivityEntry, error) {
		var e domain.ActivityEntry
		var payload string
		if err := row.Scan(&e.ID, &e.EventType, &e.UserID, &e.Version, &payload, &e.CreatedAt); err != nil {
			return e, err
		}
		e.Payload = []byte(payload)
		e.CreatedAt = e.CreatedAt.UTC()
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListActivity, err)
	}
	return entries, nil
}

// PurgeActivityBefore deletes entries created before cutoff
func (s *Store) PurgeActivityBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM event_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToPurgeActivity, err)
	}
	return tag.RowsAffected(), nil
}
