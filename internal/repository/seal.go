package repository

import (
	"context"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// Seal defines the interface for consistency seal persistence
type Seal interface {
	ListSeals(ctx context.Context, userID string) ([]domain.Seal, error)
	// AddSealDays creates the seal on first use and returns the updated row
	AddSealDays(ctx context.Context, userID, pathID string, days int) (*domain.Seal, error)
}
