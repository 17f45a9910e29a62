// Package profile serves the player-wide view: balances, overall rank, character
// evolution and seals. It also owns account creation and the destructive reset.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/osse101/Ascendant_Go/internal/concurrency"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/repository"
	"github.com/osse101/Ascendant_Go/internal/state"
)

// Service defines the interface for profile operations
type Service interface {
	EnsureProfile(ctx context.Context, userID, username string) (*domain.Profile, error)
	GetOverview(ctx context.Context, userID string) (*Overview, error)
	GetRank(ctx context.Context, userID string) (*domain.OverallRank, error)
	GetSeals(ctx context.Context, userID string) ([]SealView, error)
	ResetAccount(ctx context.Context, userID string) error
	Shutdown(ctx context.Context) error
}

// Repository is the storage the profile service reads
type Repository interface {
	repository.Profile
	repository.Identity
	repository.Seal
	repository.Account
}

type service struct {
	repo   Repository
	states state.Store
	tables *gamedata.Tables
	locks  *concurrency.LockManager
	bus    event.Bus
	wg     sync.WaitGroup
}

// NewService creates the profile service. states and bus may be nil. locks must be the
// manager the journey service toggles under; nil gives the service its own.
func NewService(repo Repository, states state.Store, tables *gamedata.Tables, locks *concurrency.LockManager, bus event.Bus) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:   repo,
		states: states,
		tables: tables,
		locks:  locks,
		bus:    bus,
	}
}

// EnsureProfile returns the user's profile, creating an empty one on first use
func (s *service) EnsureProfile(ctx context.Context, userID, username string) (*domain.Profile, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgEnsureProfileCalled, "user_id", userID, "username", username)

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf(ErrMsgEmptyUserID, domain.ErrInvalidInput)
	}

	existing, err := s.repo.GetProfile(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf(ErrMsgGetProfileFailed, err)
	}

	created, err := s.repo.CreateProfile(ctx, domain.Profile{UserID: userID, Username: username})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateProfileFailed, err)
	}
	log.Info(LogMsgProfileCreated, "user_id", userID)
	return created, nil
}

// GetOverview loads the profile, identities and seals and derives the aggregates.
// Identities reflect the latest optimistic snapshot when one is cached.
func (s *service) GetOverview(ctx context.Context, userID string) (*Overview, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetProfileFailed, err)
	}
	identities, err := s.identities(ctx, userID)
	if err != nil {
		return nil, err
	}
	seals, err := s.repo.ListSeals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListSealsFailed, err)
	}
	return BuildOverview(s.tables, *p, identities, seals), nil
}

func (s *service) GetRank(ctx context.Context, userID string) (*domain.OverallRank, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetProfileFailed, err)
	}
	r := BuildOverview(s.tables, *p, nil, nil).Rank
	return &r, nil
}

func (s *service) GetSeals(ctx context.Context, userID string) ([]SealView, error) {
	if _, err := s.repo.GetProfile(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetProfileFailed, err)
	}
	identities, err := s.repo.ListIdentities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListIdentitiesFailed, err)
	}
	seals, err := s.repo.ListSeals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListSealsFailed, err)
	}
	return BuildOverview(s.tables, domain.Profile{}, identities, seals).Seals, nil
}

// ResetAccount wipes identities, progress, seals and inventory, zeroes the profile and
// drops every cached snapshot of the user
func (s *service) ResetAccount(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)
	log.Warn(LogMsgResetAccountCalled, "user_id", userID)

	if _, err := s.repo.GetProfile(ctx, userID); err != nil {
		return fmt.Errorf(ErrMsgGetProfileFailed, err)
	}
	identities, err := s.repo.ListIdentities(ctx, userID)
	if err != nil {
		return fmt.Errorf(ErrMsgListIdentitiesFailed, err)
	}
	keys := make([]string, 0, len(identities))
	for _, identity := range identities {
		keys = append(keys, concurrency.PathKey(userID, identity.ID))
	}

	// Hold every path lock so no toggle can write a deleted identity back into the cache
	err = s.locks.WithLocks(keys, func() error {
		if err := s.repo.ResetAccount(ctx, userID); err != nil {
			return fmt.Errorf(ErrMsgResetAccountFailed, userID, err)
		}
		if s.states != nil {
			if err := s.states.PurgeUser(ctx, userID); err != nil {
				log.Warn(LogMsgStatePurgeFailed, "user_id", userID, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishAsync(event.NewAccountResetEvent(userID))
	log.Info(LogMsgAccountReset, "user_id", userID)
	return nil
}

func (s *service) identities(ctx context.Context, userID string) ([]domain.Identity, error) {
	identities, err := s.repo.ListIdentities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListIdentitiesFailed, err)
	}
	if s.states == nil {
		return identities, nil
	}
	for i, identity := range identities {
		if cached, found, err := s.states.GetIdentity(ctx, userID, identity.ID); err == nil && found {
			identities[i] = cached
		}
	}
	return identities, nil
}

func (s *service) publishAsync(evt event.Event) {
	if s.bus == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.Background()
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}()
}

func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgProfileShuttingDown)
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf(ErrMsgShutdownTimedOut, ctx.Err())
	}
}
