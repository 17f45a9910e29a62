package economy

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/Ascendant_Go/internal/clock"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/repository"
)

// Service defines the interface for shop operations
type Service interface {
	GetShopPrices(ctx context.Context, userID string) ([]domain.ShopPrice, error)
	BuyItem(ctx context.Context, userID, itemQuery string, quantity int) (*domain.PurchaseResult, error)
	UseItem(ctx context.Context, userID string, itemID uuid.UUID) (*domain.InventoryItem, error)
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Economy
	inventory repository.Inventory
	tables    *gamedata.Tables
	clock     clock.Clock
	bus       event.Bus
	wg        sync.WaitGroup
}

// NewService creates a new shop service. bus may be nil.
func NewService(repo repository.Economy, inventory repository.Inventory, tables *gamedata.Tables, clk clock.Clock, bus event.Bus) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{
		repo:      repo,
		inventory: inventory,
		tables:    tables,
		clock:     clk,
		bus:       bus,
	}
}

func (s *service) GetShopPrices(ctx context.Context, userID string) ([]domain.ShopPrice, error) {
	logger.FromContext(ctx).Debug(LogMsgGetShopPricesCalled, "user_id", userID)

	inventory, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}
	return CalculatePrices(s.tables.Shop, inventory, s.clock.Now()), nil
}

func (s *service) GetInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	inventory, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}
	return inventory, nil
}

// BuyItem prices each requested unit in sequence, since every unit bought inflates the next,
// then buys as many as the balance covers. The debit and the new rows commit together.
func (s *service) BuyItem(ctx context.Context, userID, itemQuery string, quantity int) (*domain.PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyItemCalled, "user_id", userID, "item", itemQuery, "quantity", quantity)

	if err := validateBuyRequest(quantity); err != nil {
		return nil, err
	}

	template, fuzzyMatched, err := s.tables.FindShopItem(itemQuery)
	if err != nil {
		return nil, err
	}
	if fuzzyMatched {
		log.Info(LogMsgFuzzyMatched, "query", itemQuery, "item", template.ID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	profile, err := tx.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetProfileFailed, err)
	}
	inventory, err := tx.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}

	now := s.clock.Now()
	units := QuoteUnits(template, CountActive(template, inventory, now), quantity)
	actualQuantity, cost := calculateAffordableQuantity(units, profile.Coins)
	if actualQuantity == 0 {
		return nil, fmt.Errorf(ErrMsgInsufficientFundsToBuyOneFmt, template.ID, units[0], profile.Coins, domain.ErrInsufficientFunds)
	}
	if actualQuantity < quantity {
		log.Info(LogMsgAdjustedPurchaseQty, "requested", quantity, "actual", actualQuantity)
	}

	updated, err := tx.UpdateProfile(ctx, userID, domain.ProfileUpdate{CoinsDelta: -cost})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateProfileFailed, err)
	}

	items := make([]domain.InventoryItem, 0, actualQuantity)
	for i := 0; i < actualQuantity; i++ {
		item := domain.InventoryItem{
			ID:         uuid.New(),
			UserID:     userID,
			TemplateID: template.ID,
			Quantity:   1,
			IsActive:   true,
			AcquiredAt: now,
			ExpiresAt:  template.ExpiresAt(now),
		}
		if err := tx.AddInventoryItem(ctx, item); err != nil {
			return nil, fmt.Errorf(ErrMsgAddItemFailed, err)
		}
		items = append(items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	s.publishAsync(event.NewItemPurchasedEvent(userID, template.ID, actualQuantity, cost))
	log.Info(LogMsgItemPurchased, "user_id", userID, "item", template.ID, "quantity", actualQuantity, "cost", cost)

	return &domain.PurchaseResult{
		TemplateID:   template.ID,
		Items:        items,
		Quantity:     actualQuantity,
		Requested:    quantity,
		TotalCost:    cost,
		Balance:      updated.Coins,
		FuzzyMatched: fuzzyMatched,
	}, nil
}

// UseItem consumes an owned instance. It keeps counting toward inflation as a ghost
// until its template's cooldown has passed.
func (s *service) UseItem(ctx context.Context, userID string, itemID uuid.UUID) (*domain.InventoryItem, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUseItemCalled, "user_id", userID, "item_id", itemID)

	item, err := s.inventory.GetInventoryItem(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, err)
	}
	if item.IsUsed {
		return nil, domain.ErrItemAlreadyUsed
	}

	now := s.clock.Now()
	if item.ExpiresAt != nil && now.After(*item.ExpiresAt) {
		return nil, fmt.Errorf(ErrMsgItemExpiredFmt, itemID, item.ExpiresAt.Format(domain.DayLayout), domain.ErrItemNotFound)
	}

	if err := s.inventory.MarkItemUsed(ctx, userID, itemID, now); err != nil {
		return nil, fmt.Errorf(ErrMsgMarkUsedFailed, err)
	}

	item.IsUsed = true
	item.IsActive = false
	item.UsedAt = &now

	s.publishAsync(event.NewItemUsedEvent(userID, itemID.String(), item.TemplateID))
	log.Info(LogMsgItemUsed, "user_id", userID, "item_id", itemID, "template", item.TemplateID)
	return item, nil
}

// publishAsync hands the event to the bus without blocking the request
func (s *service) publishAsync(evt event.Event) {
	if s.bus == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.Background()
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}()
}

func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgEconomyShuttingDown)
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf(ErrMsgShutdownTimedOut, ctx.Err())
	}
}
