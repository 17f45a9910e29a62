package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/repository"
)

type economyTx struct {
	tx     *sql.Tx
	unlock func()
}

// BeginTx starts a purchase transaction. Purchases are serialized until Commit or Rollback.
func (s *Store) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	s.economyMu.Lock()
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		s.economyMu.Unlock()
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	var once sync.Once
	return &economyTx{tx: tx, unlock: func() { once.Do(s.economyMu.Unlock) }}, nil
}

func (t *economyTx) Commit(context.Context) error {
	defer t.unlock()
	return t.tx.Commit()
}

// Rollback is a no-op once the transaction has been committed
func (t *economyTx) Rollback(context.Context) error {
	defer t.unlock()
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func (t *economyTx) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return getProfile(ctx, t.tx, userID)
}

func (t *economyTx) GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return getInventory(ctx, t.tx, userID)
}

func (t *economyTx) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	return updateProfile(ctx, t.tx, userID, update, toMillis(timeNow()))
}

func (t *economyTx) AddInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	return addInventoryItem(ctx, t.tx, item)
}
