package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// GetDailyProgress returns the persisted snapshot for one path and day
func (s *Store) GetDailyProgress(ctx context.Context, userID, pathID string, day time.Time) (*domain.DailyProgress, error) {
	dayKey := domain.DayFor(day).Format(domain.DayLayout)
	var p domain.DailyProgress
	var dayText, status, tasks string
	var award sql.NullString
	var updatedAt int64
	err := s.sqlDB.QueryRowContext(ctx, `
		SELECT user_id, path_id, day, total_tasks, completed_count, status, tasks, milestone_award, revision, updated_at
		FROM daily_progress
		WHERE user_id = ? AND path_id = ? AND day = ?`, userID, pathID, dayKey).
		Scan(&p.UserID, &p.PathID, &dayText, &p.TotalTasks, &p.CompletedCount, &status, &tasks, &award, &p.Revision, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDayNotFound, dayKey)
	}
	if err != nil {
		return nil, fmt.Errorf("get daily progress: %w", err)
	}

	if p.Day, err = time.Parse(domain.DayLayout, dayText); err != nil {
		return nil, fmt.Errorf("parse day %q: %w", dayText, err)
	}
	p.Status = domain.DayStatus(status)
	p.UpdatedAt = fromMillis(updatedAt)
	if err := json.Unmarshal([]byte(tasks), &p.Tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if award.Valid && award.String != "" {
		if err := json.Unmarshal([]byte(award.String), &p.MilestoneAward); err != nil {
			return nil, fmt.Errorf("decode milestone award: %w", err)
		}
	}
	return &p, nil
}

// UpsertDailyProgress replaces the snapshot for the progress's path and day unless the stored
// revision is newer
func (s *Store) UpsertDailyProgress(ctx context.Context, progress domain.DailyProgress) error {
	tasks := progress.Tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	var award sql.NullString
	if progress.MilestoneAward != nil {
		data, err := json.Marshal(progress.MilestoneAward)
		if err != nil {
			return fmt.Errorf("encode milestone award: %w", err)
		}
		award = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO daily_progress (user_id, path_id, day, total_tasks, completed_count, status, tasks, milestone_award, revision, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, path_id, day) DO UPDATE SET
			total_tasks     = excluded.total_tasks,
			completed_count = excluded.completed_count,
			status          = excluded.status,
			tasks           = excluded.tasks,
			milestone_award = excluded.milestone_award,
			revision        = excluded.revision,
			updated_at      = excluded.updated_at
		WHERE daily_progress.revision <= excluded.revision`,
		progress.UserID, progress.PathID, domain.DayFor(progress.Day).Format(domain.DayLayout),
		progress.TotalTasks, progress.CompletedCount, string(progress.Status), string(tasksJSON), award, progress.Revision, toMillis(timeNow()))
	if err != nil {
		return fmt.Errorf("upsert daily progress: %w", err)
	}
	return nil
}
