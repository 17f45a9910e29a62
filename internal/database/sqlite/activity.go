package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// LogActivity appends an event to event_log
func (s *Store) LogActivity(ctx context.Context, entry domain.ActivityEntry) error {
	var userID sql.NullString
	if entry.UserID != "" {
		userID = sql.NullString{String: entry.UserID, Valid: true}
	}
	payload := entry.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO event_log (event_type, user_id, version, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.EventType, userID, entry.Version, string(payload), toMillis(createdAt))
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

// ListActivity returns matching entries, newest first
func (s *Store) ListActivity(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityEntry, error) {
	var where []string
	var args []any
	if filter.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.EventType != "" {
		where = append(where, "event_type = ?")
		args = append(args, filter.EventType)
	}
	if filter.Since != nil {
		where = append(where, "created_at >= ?")
		args = append(args, toMillis(*filter.Since))
	}

	query := `SELECT id, event_type, COALESCE(user_id, ''), version, payload, created_at FROM event_log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	entries := []domain.ActivityEntry{}
	for rows.Next() {
		var e domain.ActivityEntry
		var payload string
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.EventType, &e.UserID, &e.Version, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("list activity: %w", err)
		}
		e.Payload = []byte(payload)
		e.CreatedAt = fromMillis(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PurgeActivityBefore deletes entries created before cutoff
func (s *Store) PurgeActivityBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM event_log WHERE created_at < ?`, toMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("purge activity: %w", err)
	}
	return res.RowsAffected()
}
