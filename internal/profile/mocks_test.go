package profile

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) CreateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) CreateIdentity(ctx context.Context, identity domain.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockRepository) GetIdentity(ctx context.Context, userID, identityID string) (*domain.Identity, error) {
	args := m.Called(ctx, userID, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockRepository) ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Identity), args.Error(1)
}

func (m *MockRepository) UpdateIdentity(ctx context.Context, identityID string, update domain.IdentityUpdate) error {
	args := m.Called(ctx, identityID, update)
	return args.Error(0)
}

func (m *MockRepository) ListSeals(ctx context.Context, userID string) ([]domain.Seal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seal), args.Error(1)
}

func (m *MockRepository) AddSealDays(ctx context.Context, userID, pathID string, days int) (*domain.Seal, error) {
	args := m.Called(ctx, userID, pathID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seal), args.Error(1)
}

func (m *MockRepository) ResetAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
