package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

const inventoryColumns = `item_id::text, user_id, template_id, quantity, is_used, is_active, used_at, acquired_at, expires_at`

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	var id string
	if err := row.Scan(&id, &item.UserID, &item.TemplateID, &item.Quantity, &item.IsUsed, &item.IsActive,
		&item.UsedAt, &item.AcquiredAt, &item.ExpiresAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	item.ID = parsed
	return &item, nil
}

func getInventory(ctx context.Context, q querier, userID string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE user_id = $1 ORDER BY acquired_at, item_id`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return items, nil
}

func addInventoryItem(ctx context.Context, q querier, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (item_id, user_id, template_id, quantity, is_used, is_active, used_at, acquired_at, expires_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query, item.ID.String(), item.UserID, item.TemplateID, item.Quantity,
		item.IsUsed, item.IsActive, item.UsedAt, item.AcquiredAt, item.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddItem, err)
	}
	return nil
}

// GetInventory returns every item instance the user owns, used ones included
func (s *Store) GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return getInventory(ctx, s.db, userID)
}

// GetInventoryItem returns a single owned instance
func (s *Store) GetInventoryItem(ctx context.Context, userID string, itemID uuid.UUID) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE user_id = $1 AND item_id = $2::uuid`
	item, err := scanInventoryItem(s.db.QueryRow(ctx, query, userID, itemID.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return item, nil
}

// MarkItemUsed flags an unused item as consumed at usedAt
func (s *Store) MarkItemUsed(ctx context.Context, userID string, itemID uuid.UUID, usedAt time.Time) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE inventory_items SET is_used = TRUE, is_active = FALSE, used_at = $3
		WHERE user_id = $1 AND item_id = $2::uuid AND NOT is_used
	`, userID, itemID.String(), usedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkItemUsed, err)
	}
	if tag.RowsAffected() == 0 {
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
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM inventory_items WHERE user_id = $1 AND item_id = ANY($2::uuid[])`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteItems, err)
	}
	return int(tag.RowsAffected()), nil
}
