package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryTickets is the only shop category that participates in inflation
const CategoryTickets = "tickets"

// ShopItemTemplate is immutable catalog data
type ShopItemTemplate struct {
	ID            string  `json:"id" yaml:"id" toml:"id" validate:"required"`
	Name          string  `json:"name" yaml:"name" toml:"name" validate:"required"`
	Category      string  `json:"category" yaml:"category" toml:"category" validate:"required"`
	BasePrice     int     `json:"base_price" yaml:"base_price" toml:"base_price" validate:"gte=0"`
	InflationRate float64 `json:"inflation_rate" yaml:"inflation_rate" toml:"inflation_rate" validate:"gte=0"`
	CooldownHours float64 `json:"cooldown_hours" yaml:"cooldown_hours" toml:"cooldown_hours" validate:"gte=0"`
	// LifetimeHours bounds how long an unused instance stays in the inventory; zero never expires
	LifetimeHours float64 `json:"lifetime_hours,omitempty" yaml:"lifetime_hours,omitempty" toml:"lifetime_hours,omitempty" validate:"gte=0"`
}

// Cooldown returns the template's cooldown as a duration
func (t ShopItemTemplate) Cooldown() time.Duration {
	return time.Duration(t.CooldownHours * float64(time.Hour))
}

// ExpiresAt returns when an instance acquired at acquiredAt expires, or nil if it never does
func (t ShopItemTemplate) ExpiresAt(acquiredAt time.Time) *time.Time {
	if t.LifetimeHours <= 0 {
		return nil
	}
	expires := acquiredAt.Add(time.Duration(t.LifetimeHours * float64(time.Hour)))
	return &expires
}

// Inflates reports whether the template's category participates in inflation
func (t ShopItemTemplate) Inflates() bool {
	return t.Category == CategoryTickets
}

// InventoryItem is an owned instance of a shop template
type InventoryItem struct {
	ID         uuid.UUID  `json:"id"`
	UserID     string     `json:"user_id"`
	TemplateID string     `json:"template_id"`
	Quantity   int        `json:"quantity"`
	IsUsed     bool       `json:"is_used"`
	IsActive   bool       `json:"is_active"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	AcquiredAt time.Time  `json:"acquired_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// ShopPrice is the evaluated price of a template at a point in time
type ShopPrice struct {
	TemplateID       string     `json:"template_id"`
	Name             string     `json:"name"`
	Category         string     `json:"category"`
	BasePrice        int        `json:"base_price"`
	CurrentPrice     int        `json:"current_price"`
	InflationPercent float64    `json:"inflation_percent"`
	ActiveCount      int        `json:"active_count"`
	IsInflated       bool       `json:"is_inflated"`
	ResetsAt         *time.Time `json:"resets_at,omitempty"`
}

// PurchaseResult describes a completed shop purchase
type PurchaseResult struct {
	TemplateID   string          `json:"template_id"`
	Items        []InventoryItem `json:"items"`
	Quantity     int             `json:"quantity"`
	Requested    int             `json:"requested"`
	TotalCost    int             `json:"total_cost"`
	Balance      int             `json:"balance"`
	FuzzyMatched bool            `json:"fuzzy_matched,omitempty"`
}
