package journey

import (
	"context"

	"github.com/osse101/Ascendant_Go/internal/concurrency"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/metrics"
	"github.com/osse101/Ascendant_Go/internal/state"
	"github.com/osse101/Ascendant_Go/internal/streak"
	"github.com/osse101/Ascendant_Go/internal/worker"
)

// Background writes are best-effort: a failure or a full queue is logged and counted, never
// returned to the player, and a toggle never waits for the queue.
//
// Day and identity jobs write the latest snapshot from the state store, falling back to the
// one captured when they were queued. Jobs for the same target may run out of order, so every
// snapshot carries a revision and the stores drop writes older than the stored one.
// Profile jobs carry relative deltas, which commute.

func (s *service) persistDay(captured domain.DayState) {
	key := state.KeyFor(captured)
	s.enqueue(OpUpsertDailyProgress, func(ctx context.Context) error {
		return s.flushes.WithLock(OpUpsertDailyProgress+":"+concurrency.PathKey(key.UserID, key.PathID), func() error {
			ds := captured
			if latest, found, err := s.states.Get(ctx, key); err == nil && found {
				ds = latest
			}
			return s.repo.UpsertDailyProgress(ctx, ds.Progress())
		})
	})
}

func (s *service) persistIdentity(captured domain.Identity) {
	s.enqueue(OpUpdateIdentity, func(ctx context.Context) error {
		return s.flushes.WithLock(OpUpdateIdentity+":"+concurrency.PathKey(captured.UserID, captured.ID), func() error {
			identity := captured
			if latest, found, err := s.states.GetIdentity(ctx, captured.UserID, captured.ID); err == nil && found {
				identity = latest
			}
			return s.repo.UpdateIdentity(ctx, identity.ID, domain.UpdateFrom(identity))
		})
	})
}

func (s *service) persistProfileDelta(userID string, delta streak.RewardDelta) {
	update := delta.ProfileUpdate()
	s.enqueue(OpUpdateProfile, func(ctx context.Context) error {
		_, err := s.repo.UpdateProfile(ctx, userID, update)
		return err
	})
}

func (s *service) enqueue(op string, fn func(ctx context.Context) error) {
	job := worker.NewJob(op, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil {
			metrics.PersistenceFailures.WithLabelValues(op).Inc()
		}
		return err
	})
	if !s.jobs.TryEnqueue(job) {
		metrics.PersistenceFailures.WithLabelValues(op).Inc()
		logger.FromContext(context.Background()).Error(LogMsgPersistEnqueueFail, "operation", op)
	}
}
