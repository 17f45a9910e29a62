package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// GetDailyProgress returns the persisted snapshot for one path and day
func (s *Store) GetDailyProgress(ctx context.Context, userID, pathID string, day time.Time) (*domain.DailyProgress, error) {
	query := `
		SELECT user_id, path_id, day, total_tasks, completed_count, status, tasks, milestone_award, revision, updated_at
		FROM daily_progress
		WHERE user_id = $1 AND path_id = $2 AND day = $3
	`
	var p domain.DailyProgress
	var status string
	var tasks, award []byte
	err := s.db.QueryRow(ctx, query, userID, pathID, domain.DayFor(day)).
		Scan(&p.UserID, &p.PathID, &p.Day, &p.TotalTasks, &p.CompletedCount, &status, &tasks, &award, &p.Revision, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDayNotFound, day.Format(domain.DayLayout))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProgress, err)
	}
	p.Status = domain.DayStatus(status)
	p.Day = domain.DayFor(p.Day)

	if err := json.Unmarshal(tasks, &p.Tasks); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeTasks, err)
	}
	if len(award) > 0 {
		if err := json.Unmarshal(award, &p.MilestoneAward); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeTasks, err)
		}
	}
	return &p, nil
}

// UpsertDailyProgress replaces the snapshot for the progress's path and day. A stored snapshot
// with a higher revision is kept.
func (s *Store) UpsertDailyProgress(ctx context.Context, progress domain.DailyProgress) error {
	tasks := progress.Tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeTasks, err)
	}
	var awardJSON []byte
	if progress.MilestoneAward != nil {
		if awardJSON, err = json.Marshal(progress.MilestoneAward); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeTasks, err)
		}
	}

	query := `
		INSERT INTO daily_progress (user_id, path_id, day, total_tasks, completed_count, status, tasks, milestone_award, revision, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id, path_id, day) DO UPDATE SET
			total_tasks     = EXCLUDED.total_tasks,
			completed_count = EXCLUDED.completed_count,
			status          = EXCLUDED.status,
			tasks           = EXCLUDED.tasks,
			milestone_award = EXCLUDED.milestone_award,
			revision        = EXCLUDED.revision,
			updated_at      = NOW()
		WHERE daily_progress.revision <= EXCLUDED.revision
	`
	_, err = s.db.Exec(ctx, query, progress.UserID, progress.PathID, domain.DayFor(progress.Day),
		progress.TotalTasks, progress.CompletedCount, string(progress.Status), tasksJSON, awardJSON, progress.Revision)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertProgress, err)
	}
	return nil
}
