package daycycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Ascendant_Go/internal/clock"
	"github.com/osse101/Ascendant_Go/internal/concurrency"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/economy"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/profile"
	"github.com/osse101/Ascendant_Go/internal/seal"
	"github.com/osse101/Ascendant_Go/internal/state"
)

// capturePreviousDay closes out yesterday for every identity. Identities selected today had
// no previous day and are left alone.
func (s *service) capturePreviousDay(ctx context.Context, summary *Summary, identities []domain.Identity) error {
	shields := &shieldPool{}
	for _, row := range identities {
		var ps PathSummary
		err := s.locks.WithLock(concurrency.PathKey(summary.UserID, row.ID), func() error {
			var err error
			ps, err = s.captureIdentity(ctx, summary, row, shields)
			return err
		})
		if err != nil {
			return err
		}
		summary.Paths = append(summary.Paths, ps)
	}
	return nil
}

func (s *service) captureIdentity(ctx context.Context, summary *Summary, row domain.Identity, shields *shieldPool) (PathSummary, error) {
	log := logger.FromContext(ctx)
	identity := s.currentIdentity(ctx, row)
	ps := PathSummary{IdentityID: identity.ID, PathKey: identity.PathKey, Streak: identity.Streak}

	if !clock.DayAt(identity.CreatedAt, s.cfg.DayOffset).Before(summary.Day) {
		return ps, nil
	}

	key := state.Key{UserID: identity.UserID, PathID: identity.ID, Day: summary.PreviousDay}
	previous, cached, err := s.previousDay(ctx, key)
	if err != nil {
		return ps, err
	}
	if cached != nil {
		if err := s.repo.UpsertDailyProgress(ctx, cached.Progress()); err != nil {
			return ps, fmt.Errorf(ErrMsgPersistProgressFmt, key.String(), err)
		}
		previous = cached.Status
	}

	ps.Completed = previous == domain.DayStatusCompleted
	switch {
	case ps.Completed:
		updated, err := s.repo.AddSealDays(ctx, identity.UserID, identity.ID, 1)
		if err != nil {
			return ps, fmt.Errorf(ErrMsgAddSealDayFmt, identity.ID, err)
		}
		ps.SealDays = updated.TotalDaysActive
		if seal.DidSealLevelUp(updated.TotalDaysActive-1, updated.TotalDaysActive) {
			ps.SealLeveledUp = true
			level := seal.CalculateSealProgress(updated.TotalDaysActive).Level
			log.Info(LogMsgSealLeveledUp, "user_id", identity.UserID, "path", identity.PathKey, "level", level)
			s.publishAsync(event.NewSealLevelUpEvent(identity.UserID, identity.ID, level))
		}

	case s.cfg.ResetStreakOnMissedDay && identity.Streak > 0:
		log.Info(LogMsgPreviousDayMissed, "user_id", identity.UserID, "path", identity.PathKey, "streak", identity.Streak)

		shield, err := shields.take(ctx, s, identity.UserID)
		if err != nil {
			return ps, err
		}
		if shield != nil {
			if err := s.repo.MarkItemUsed(ctx, identity.UserID, shield.ID, s.clock.Now()); err != nil {
				return ps, fmt.Errorf(ErrMsgConsumeShieldFmt, shield.ID, err)
			}
			ps.ShieldUsed = true
			log.Info(LogMsgStreakShieldUsed, "user_id", identity.UserID, "path", identity.PathKey, "item_id", shield.ID)
			s.publishAsync(event.NewItemUsedEvent(identity.UserID, shield.ID.String(), shield.TemplateID))
			break
		}

		before := identity.Streak
		identity.Streak = 0
		identity.Revision = domain.NextRevision(identity.Revision, s.clock.Now())
		update := domain.IdentityUpdate{Streak: &identity.Streak, Revision: &identity.Revision}
		if err := s.repo.UpdateIdentity(ctx, identity.ID, update); err != nil {
			return ps, fmt.Errorf(ErrMsgResetStreakFmt, identity.ID, err)
		}
		if err := s.states.PutIdentity(ctx, identity); err != nil {
			log.Warn(LogMsgStateWriteFailed, "identity_id", identity.ID, "error", err)
		}
		ps.Streak = 0
		ps.StreakReset = true
		log.Info(LogMsgStreakReset, "user_id", identity.UserID, "path", identity.PathKey, "previous", before)
		s.publishAsync(event.NewStreakResetEvent(identity, before))
	}

	if err := s.states.Delete(ctx, key); err != nil {
		log.Warn(LogMsgStateWriteFailed, "key", key.String(), "error", err)
	}
	return ps, nil
}

// previousDay returns the cached snapshot when there is one, else the persisted status.
// A day nobody touched reports an empty status.
func (s *service) previousDay(ctx context.Context, key state.Key) (domain.DayStatus, *domain.DayState, error) {
	if ds, found, err := s.states.Get(ctx, key); err == nil && found {
		return ds.Status, &ds, nil
	}
	progress, err := s.repo.GetDailyProgress(ctx, key.UserID, key.PathID, key.Day)
	switch {
	case err == nil:
		return progress.Status, nil, nil
	case errors.Is(err, domain.ErrDayNotFound):
		return "", nil, nil
	default:
		return "", nil, fmt.Errorf(ErrMsgLoadProgressFmt, key.String(), err)
	}
}

// currentIdentity prefers the optimistic snapshot over the row, which may lag behind it
func (s *service) currentIdentity(ctx context.Context, row domain.Identity) domain.Identity {
	if cached, found, err := s.states.GetIdentity(ctx, row.UserID, row.ID); err == nil && found {
		return cached
	}
	return row
}

// resetProgress gives every path a fresh day. A day the player already touched, because the
// cycle ran after they started toggling, is kept.
func (s *service) resetProgress(ctx context.Context, summary *Summary, identities []domain.Identity) error {
	for _, identity := range identities {
		err := s.locks.WithLock(concurrency.PathKey(summary.UserID, identity.ID), func() error {
			key := state.Key{UserID: identity.UserID, PathID: identity.ID, Day: summary.Day}
			if _, found, err := s.states.Get(ctx, key); err == nil && found {
				return nil
			}
			progress, err := s.repo.GetDailyProgress(ctx, identity.UserID, identity.ID, summary.Day)
			if err == nil && len(progress.Tasks) > 0 {
				return nil
			}
			if err != nil && !errors.Is(err, domain.ErrDayNotFound) {
				return fmt.Errorf(ErrMsgLoadProgressFmt, key.String(), err)
			}

			path, ok := s.tables.Path(identity.PathKey)
			if !ok {
				return fmt.Errorf(ErrMsgUnknownPathFmt, identity.ID, identity.PathKey, domain.ErrPathNotFound)
			}
			fresh := path.NewDay(identity.UserID, identity.ID, summary.Day)
			if err := s.states.Put(ctx, fresh); err != nil {
				logger.FromContext(ctx).Warn(LogMsgStateWriteFailed, "key", key.String(), "error", err)
			}
			if err := s.repo.UpsertDailyProgress(ctx, fresh.Progress()); err != nil {
				return fmt.Errorf(ErrMsgPersistProgressFmt, key.String(), err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// rolloverItems drops instances that no longer matter: unused ones past their expiry and used
// ones whose cooldown has ended, so they stop counting as ghosts
func (s *service) rolloverItems(ctx context.Context, summary *Summary) error {
	inventory, err := s.repo.GetInventory(ctx, summary.UserID)
	if err != nil {
		return fmt.Errorf(ErrMsgGetInventory, err)
	}

	now := s.clock.Now()
	var purge []uuid.UUID
	for _, item := range inventory {
		if item.IsUsed {
			if !economy.IsGhost(item, s.cooldownFor(item.TemplateID), now) {
				purge = append(purge, item.ID)
			}
			continue
		}
		if item.ExpiresAt != nil && now.After(*item.ExpiresAt) {
			purge = append(purge, item.ID)
		}
	}
	if len(purge) == 0 {
		return nil
	}

	n, err := s.repo.DeleteInventoryItems(ctx, summary.UserID, purge)
	if err != nil {
		return fmt.Errorf(ErrMsgPurgeItems, err)
	}
	summary.ItemsPurged = n
	logger.FromContext(ctx).Info(LogMsgItemsPurged, "user_id", summary.UserID, "count", n)
	return nil
}

// cooldownFor returns the template's cooldown. Items whose template left the catalog have none.
func (s *service) cooldownFor(templateID string) time.Duration {
	if template, ok := s.tables.ShopItem(templateID); ok {
		return template.Cooldown()
	}
	return 0
}

// reloadAggregates recomputes the player-wide view from what the earlier steps wrote
func (s *service) reloadAggregates(ctx context.Context, summary *Summary) error {
	p, err := s.repo.GetProfile(ctx, summary.UserID)
	if err != nil {
		return fmt.Errorf(ErrMsgReloadAggregates, err)
	}
	identities, err := s.repo.ListIdentities(ctx, summary.UserID)
	if err != nil {
		return fmt.Errorf(ErrMsgReloadAggregates, err)
	}
	for i, identity := range identities {
		identities[i] = s.currentIdentity(ctx, identity)
	}
	seals, err := s.repo.ListSeals(ctx, summary.UserID)
	if err != nil {
		return fmt.Errorf(ErrMsgReloadAggregates, err)
	}
	summary.Overview = profile.BuildOverview(s.tables, *p, identities, seals)
	return nil
}

// shieldPool hands out the user's unused streak shields, loading the inventory on first use
type shieldPool struct {
	loaded bool
	items  []domain.InventoryItem
}

func (p *shieldPool) take(ctx context.Context, s *service, userID string) (*domain.InventoryItem, error) {
	if !p.loaded {
		inventory, err := s.repo.GetInventory(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetInventory, err)
		}
		now := s.clock.Now()
		for _, item := range inventory {
			if item.TemplateID != StreakShieldItemID || item.IsUsed {
				continue
			}
			if item.ExpiresAt != nil && now.After(*item.ExpiresAt) {
				continue
			}
			p.items = append(p.items, item)
		}
		p.loaded = true
	}
	if len(p.items) == 0 {
		return nil, nil
	}
	item := p.items[0]
	p.items = p.items[1:]
	return &item, nil
}
