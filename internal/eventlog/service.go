// Package eventlog records every published game event so players and operators can
// review what happened to an account.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/Ascendant_Go/internal/clock"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/repository"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger on every published event type
	Subscribe(bus event.Bus) error
	// History returns a user's entries, newest first. eventType may be empty.
	History(ctx context.Context, userID, eventType string, limit int) ([]domain.ActivityEntry, error)
	// CleanupOldEvents removes entries older than the retention period
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo  repository.ActivityLog
	clock clock.Clock
}

// NewService creates a new event logging service
func NewService(repo repository.ActivityLog, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{repo: repo, clock: clk}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	logger.Info(LogMsgSubscribed, "types", len(event.AllTypes))
	return nil
}

type userRef struct {
	UserID string `json:"user_id"`
}

func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		log.Debug(LogMsgPayloadEncodeFailed, "type", evt.Type, "error", err)
		return nil
	}
	var ref userRef
	_ = json.Unmarshal(payload, &ref)

	entry := domain.ActivityEntry{
		EventType: string(evt.Type),
		UserID:    ref.UserID,
		Version:   evt.Version,
		Payload:   payload,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.LogActivity(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return fmt.Errorf(ErrMsgLogEventFailed, evt.Type, err)
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", ref.UserID)
	return nil
}

func (s *service) History(ctx context.Context, userID, eventType string, limit int) ([]domain.ActivityEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	entries, err := s.repo.ListActivity(ctx, domain.ActivityFilter{UserID: userID, EventType: eventType, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListHistoryFailed, err)
	}
	return entries, nil
}

func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	count, err := s.repo.PurgeActivityBefore(ctx, s.clock.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCleanupFailed, err)
	}
	return count, nil
}
