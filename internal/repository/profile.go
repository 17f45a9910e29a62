package repository

import (
	"context"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// Profile defines the interface for player profile persistence
type Profile interface {
	// GetProfile returns domain.ErrUserNotFound when the user has no profile
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	// CreateProfile inserts the profile if absent and returns the stored row
	CreateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error)
	// UpdateProfile applies relative deltas atomically. Balances never drop below zero.
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}
