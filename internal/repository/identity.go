package repository

import (
	"context"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// Identity defines the interface for path identity persistence
type Identity interface {
	// CreateIdentity returns domain.ErrPathAlreadySelected when the user already follows the path
	CreateIdentity(ctx context.Context, identity domain.Identity) error
	// GetIdentity returns domain.ErrIdentityNotFound when missing
	GetIdentity(ctx context.Context, userID, identityID string) (*domain.Identity, error)
	ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error)
	UpdateIdentity(ctx context.Context, identityID string, update domain.IdentityUpdate) error
}
