package repository

import (
	"context"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// Economy defines the interface for shop persistence. Purchases run inside a transaction
// so the debit and the new inventory rows land together.
type Economy interface {
	BeginTx(ctx context.Context) (EconomyTx, error)
}

// EconomyTx defines the interface for shop transactions
type EconomyTx interface {
	Tx
	// GetProfile locks the profile row for the rest of the transaction where the backend supports it
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error)
	AddInventoryItem(ctx context.Context, item domain.InventoryItem) error
}
