package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Ascendant_Go/internal/daycycle"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/journey"
	"github.com/osse101/Ascendant_Go/internal/profile"
)

type MockJourneyService struct {
	mock.Mock
}

func (m *MockJourneyService) ListPaths() []gamedata.PathDef {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]gamedata.PathDef)
}

func (m *MockJourneyService) SelectPath(ctx context.Context, userID, pathQuery string) (*domain.Identity, error) {
	args := m.Called(ctx, userID, pathQuery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockJourneyService) GetIdentities(ctx context.Context, userID string) ([]domain.Identity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Identity), args.Error(1)
}

func (m *MockJourneyService) GetToday(ctx context.Context, userID, identityID string) (*journey.Today, error) {
	args := m.Called(ctx, userID, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journey.Today), args.Error(1)
}

func (m *MockJourneyService) ToggleTask(ctx context.Context, userID, identityID, taskID string) (*journey.ToggleOutcome, error) {
	args := m.Called(ctx, userID, identityID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journey.ToggleOutcome), args.Error(1)
}

func (m *MockJourneyService) ToggleSubtask(ctx context.Context, userID, identityID, taskID, subtaskID string) (*journey.SubtaskOutcome, error) {
	args := m.Called(ctx, userID, identityID, taskID, subtaskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journey.SubtaskOutcome), args.Error(1)
}

func (m *MockJourneyService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) GetShopPrices(ctx context.Context, userID string) ([]domain.ShopPrice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopPrice), args.Error(1)
}

func (m *MockEconomyService) BuyItem(ctx context.Context, userID, itemQuery string, quantity int) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, userID, itemQuery, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *MockEconomyService) UseItem(ctx context.Context, userID string, itemID uuid.UUID) (*domain.InventoryItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockEconomyService) GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockEconomyService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) EnsureProfile(ctx context.Context, userID, username string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileService) GetOverview(ctx context.Context, userID string) (*profile.Overview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Overview), args.Error(1)
}

func (m *MockProfileService) GetRank(ctx context.Context, userID string) (*domain.OverallRank, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OverallRank), args.Error(1)
}

func (m *MockProfileService) GetSeals(ctx context.Context, userID string) ([]profile.SealView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]profile.SealView), args.Error(1)
}

func (m *MockProfileService) ResetAccount(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockProfileService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockDayCycleService struct {
	mock.Mock
}

func (m *MockDayCycleService) AdvanceDay(ctx context.Context, userID string) (*daycycle.Summary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*daycycle.Summary), args.Error(1)
}

func (m *MockDayCycleService) AdvanceDayForAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDayCycleService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Subscribe(bus event.Bus) error {
	return m.Called(bus).Error(0)
}

func (m *MockHistoryService) History(ctx context.Context, userID, eventType string, limit int) ([]domain.ActivityEntry, error) {
	args := m.Called(ctx, userID, eventType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEntry), args.Error(1)
}

func (m *MockHistoryService) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
