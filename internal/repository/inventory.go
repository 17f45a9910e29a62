package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// Inventory defines the interface for owned shop item instances
type Inventory interface {
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	// GetInventoryItem returns domain.ErrItemNotFound when the user does not own the item
	GetInventoryItem(ctx context.Context, userID string, itemID uuid.UUID) (*domain.InventoryItem, error)
	// MarkItemUsed returns domain.ErrItemAlreadyUsed when the item was consumed before
	MarkItemUsed(ctx context.Context, userID string, itemID uuid.UUID, usedAt time.Time) error
	DeleteInventoryItems(ctx context.Context, userID string, itemIDs []uuid.UUID) (int, error)
}
