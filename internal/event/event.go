package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event is an in-process notification about something that changed
type Event struct {
	Version  string         `json:"version"`
	Type     Type           `json:"type"`
	Payload  any            `json:"payload"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// GetMetadataValue returns a metadata value, or nil when absent
func (e Event) GetMetadataValue(key string) any {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types
const (
	TaskToggled       Type = "task.toggled"
	IdentityLeveledUp Type = "identity.leveled_up"
	IdentityEvolved   Type = "identity.evolved"
	StreakChanged     Type = "streak.changed"
	MilestoneReached  Type = "milestone.reached"
	SealLeveledUp     Type = "seal.leveled_up"
	ItemPurchased     Type = "shop.item_purchased"
	ItemUsed          Type = "shop.item_used"
	DayAdvanced       Type = "day.advanced"
	AccountReset      Type = "account.reset"
)

// AllTypes lists every event type the services publish
var AllTypes = []Type{
	TaskToggled,
	IdentityLeveledUp,
	IdentityEvolved,
	StreakChanged,
	MilestoneReached,
	SealLeveledUp,
	ItemPurchased,
	ItemUsed,
	DayAdvanced,
	AccountReset,
}

// TaskToggledPayloadV1 is published for every task toggle
type TaskToggledPayloadV1 struct {
	UserID    string `json:"user_id"`
	PathKey   string `json:"path_key"`
	TaskID    string `json:"task_id"`
	Completed bool   `json:"completed"`
}

// LevelUpPayloadV1 is published when a path identity gains one or more levels
type LevelUpPayloadV1 struct {
	UserID     string `json:"user_id"`
	IdentityID string `json:"identity_id"`
	PathKey    string `json:"path_key"`
	OldLevel   int    `json:"old_level"`
	NewLevel   int    `json:"new_level"`
}

// EvolutionPayloadV1 is published when a path identity reaches a new stage
type EvolutionPayloadV1 struct {
	UserID     string                `json:"user_id"`
	IdentityID string                `json:"identity_id"`
	PathKey    string                `json:"path_key"`
	Stage      domain.EvolutionStage `json:"stage"`
}

// StreakChangedPayloadV1 is published when a day completes or reopens, and when a missed day resets a streak
type StreakChangedPayloadV1 struct {
	UserID     string `json:"user_id"`
	IdentityID string `json:"identity_id"`
	PathKey    string `json:"path_key"`
	Streak     int    `json:"streak"`
	Change     int    `json:"change"`
	// Reset is set when a missed day cleared the streak
	Reset bool `json:"reset,omitempty"`
}

// MilestonePayloadV1 is published when completing a day earns a milestone award
type MilestonePayloadV1 struct {
	UserID     string                `json:"user_id"`
	IdentityID string                `json:"identity_id"`
	PathKey    string                `json:"path_key"`
	Award      domain.MilestoneAward `json:"award"`
}

// SealLevelUpPayloadV1 is published when a seal crosses a level boundary
type SealLevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	PathID   string `json:"path_id"`
	NewLevel int    `json:"new_level"`
}

// ItemPurchasedPayloadV1 is published after a successful purchase
type ItemPurchasedPayloadV1 struct {
	UserID     string `json:"user_id"`
	TemplateID string `json:"template_id"`
	Quantity   int    `json:"quantity"`
	TotalCost  int    `json:"total_cost"`
}

// ItemUsedPayloadV1 is published when an inventory instance is consumed
type ItemUsedPayloadV1 struct {
	UserID     string `json:"user_id"`
	ItemID     string `json:"item_id"`
	TemplateID string `json:"template_id"`
}

// DayAdvancedPayloadV1 is published once a user's day cycle has run
type DayAdvancedPayloadV1 struct {
	UserID string    `json:"user_id"`
	Day    time.Time `json:"day"`
}

// AccountResetPayloadV1 is published after an account reset
type AccountResetPayloadV1 struct {
	UserID string `json:"user_id"`
}

func newEvent(t Type, payload any) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}

// NewTaskToggledEvent creates a task toggled event
func NewTaskToggledEvent(userID, pathKey, taskID string, completed bool) Event {
	return newEvent(TaskToggled, TaskToggledPayloadV1{UserID: userID, PathKey: pathKey, TaskID: taskID, Completed: completed})
}

// NewLevelUpEvent creates a level up event
func NewLevelUpEvent(identity domain.Identity, oldLevel int) Event {
	return newEvent(IdentityLeveledUp, LevelUpPayloadV1{
		UserID:     identity.UserID,
		IdentityID: identity.ID,
		PathKey:    identity.PathKey,
		OldLevel:   oldLevel,
		NewLevel:   identity.Level,
	})
}

// NewEvolutionEvent creates an evolution event
func NewEvolutionEvent(identity domain.Identity) Event {
	return newEvent(IdentityEvolved, EvolutionPayloadV1{
		UserID:     identity.UserID,
		IdentityID: identity.ID,
		PathKey:    identity.PathKey,
		Stage:      identity.Stage,
	})
}

// NewStreakChangedEvent creates a streak changed event
func NewStreakChangedEvent(identity domain.Identity, change int) Event {
	return newEvent(StreakChanged, StreakChangedPayloadV1{
		UserID:     identity.UserID,
		IdentityID: identity.ID,
		PathKey:    identity.PathKey,
		Streak:     identity.Streak,
		Change:     change,
	})
}

// NewStreakResetEvent creates a streak changed event for a streak lost to a missed day
func NewStreakResetEvent(identity domain.Identity, previous int) Event {
	return newEvent(StreakChanged, StreakChangedPayloadV1{
		UserID:     identity.UserID,
		IdentityID: identity.ID,
		PathKey:    identity.PathKey,
		Streak:     identity.Streak,
		Change:     identity.Streak - previous,
		Reset:      true,
	})
}

// NewMilestoneEvent creates a milestone reached event
func NewMilestoneEvent(identity domain.Identity, award domain.MilestoneAward) Event {
	return newEvent(MilestoneReached, MilestonePayloadV1{
		UserID:     identity.UserID,
		IdentityID: identity.ID,
		PathKey:    identity.PathKey,
		Award:      award,
	})
}

// NewSealLevelUpEvent creates a seal level up event
func NewSealLevelUpEvent(userID, pathID string, newLevel int) Event {
	return newEvent(SealLeveledUp, SealLevelUpPayloadV1{UserID: userID, PathID: pathID, NewLevel: newLevel})
}

// NewItemPurchasedEvent creates a purchase event
func NewItemPurchasedEvent(userID, templateID string, quantity, totalCost int) Event {
	return newEvent(ItemPurchased, ItemPurchasedPayloadV1{UserID: userID, TemplateID: templateID, Quantity: quantity, TotalCost: totalCost})
}

// NewItemUsedEvent creates an item used event
func NewItemUsedEvent(userID, itemID, templateID string) Event {
	return newEvent(ItemUsed, ItemUsedPayloadV1{UserID: userID, ItemID: itemID, TemplateID: templateID})
}

// NewDayAdvancedEvent creates a day advanced event
func NewDayAdvancedEvent(userID string, day time.Time) Event {
	return newEvent(DayAdvanced, DayAdvancedPayloadV1{UserID: userID, Day: day})
}

// NewAccountResetEvent creates an account reset event
func NewAccountResetEvent(userID string) Event {
	return newEvent(AccountReset, AccountResetPayloadV1{UserID: userID})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
