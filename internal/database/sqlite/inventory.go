package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

const inventoryColumns = `item_id, user_id, template_id, quantity, is_used, is_active, used_at, acquired_at, expires_at`

func scanInventoryItem(row interface{ Scan(...any) error }) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	var id string
	var isUsed, isActive int
	var usedAt, expiresAt sql.NullInt64
	var acquiredAt int64
	if err := row.Scan(&id, &item.UserID, &item.TemplateID, &item.Quantity, &isUsed, &isActive, &usedAt, &acquiredAt, &expiresAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse item id %q: %w", id, err)
	}
	item.ID = parsed
	item.IsUsed = isUsed != 0
	item.IsActive = isActive != 0
	item.UsedAt = fromNullMillis(usedAt)
	item.AcquiredAt = fromMillis(acquiredAt)
	item.ExpiresAt = fromNullMillis(expiresAt)
	return &item, nil
}

func getInventory(ctx context.Context, q querier, userID string) ([]domain.InventoryItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE user_id = ? ORDER BY acquired_at, item_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("get inventory: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func addInventoryItem(ctx context.Context, q querier, item domain.InventoryItem) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO inventory_items (item_id, user_id, template_id, quantity, is_used, is_active, used_at, acquired_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID.String(), item.UserID, item.TemplateID, item.Quantity, boolToInt(item.IsUsed), boolToInt(item.IsActive),
		toNullMillis(item.UsedAt), toMillis(item.AcquiredAt), toNullMillis(item.ExpiresAt))
	if err != nil {
		return fmt.Errorf("add inventory item: %w", err)
	}
	return nil
}

// GetInventory returns every item instance the user owns, used ones included
func (s *Store) GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return getInventory(ctx, s.sqlDB, userID)
}

// GetInventoryItem returns a single owned instance
func (s *Store) GetInventoryItem(ctx context.Context, userID string, itemID uuid.UUID) (*domain.InventoryItem, error) {
	item, err := scanInventoryItem(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE user_id = ? AND item_id = ?`, userID, itemID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// MarkItemUsed flags an unused item as consumed at usedAt
func (s *Store) MarkItemUsed(ctx context.Context, userID string, itemID uuid.UUID, usedAt time.Time) error {
	res, err := s.sqlDB.ExecContext(ctx, `
		UPDATE inventory_items SET is_used = 1, is_active = 0, used_at = ?
		WHERE user_id = ? AND item_id = ? AND is_used = 0`, toMillis(usedAt), userID, itemID.String())
	if err != nil {
		return fmt.Errorf("mark item used: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.GetInventoryItem(ctx, userID, itemID); err != nil {
			return err
		}
		return domain.ErrItemAlreadyUsed
	}
	return nil
}

// DeleteInventoryItems removes the given instances and reports how many existed
func (s *Store) DeleteInventoryItems(ctx context.Context, userID string, itemIDs []uuid.UUID) (int, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(itemIDs)+1)
	args = append(args, userID)
	for _, id := range itemIDs {
		args = append(args, id.String())
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(itemIDs)), ",")
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM inventory_items WHERE user_id = ? AND item_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("delete inventory items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete inventory items: %w", err)
	}
	return int(n), nil
}
