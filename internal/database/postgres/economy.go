package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/repository"
)

// economyTx scopes profile and inventory access to one transaction
type economyTx struct {
	tx pgx.Tx
}

// BeginTx starts a purchase transaction
func (s *Store) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &economyTx{tx: tx}, nil
}

func (t *economyTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback is a no-op once the transaction has been committed
func (t *economyTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err == pgx.ErrTxClosed {
		return nil
	}
	return err
}

// GetProfile locks the profile row for the rest of the transaction
func (t *economyTx) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return getProfile(ctx, t.tx, userID, true)
}

func (t *economyTx) GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return getInventory(ctx, t.tx, userID)
}

func (t *economyTx) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	return updateProfile(ctx, t.tx, userID, update)
}

func (t *economyTx) AddInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	return addInventoryItem(ctx, t.tx, item)
}
