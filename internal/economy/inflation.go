package economy

import (
	"math"
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// IsGhost reports whether a used instance is still inside its template's cooldown window.
// Ghost instances keep inflating the price after they have been consumed.
func IsGhost(item domain.InventoryItem, cooldown time.Duration, now time.Time) bool {
	if !item.IsUsed || item.UsedAt == nil {
		return false
	}
	return !now.After(item.UsedAt.Add(cooldown))
}

// CountActive counts the instances of a template that currently drive its price:
// the unused quantity still owned plus one per ghost instance.
// Unused instances past their expiry no longer count.
func CountActive(template domain.ShopItemTemplate, inventory []domain.InventoryItem, now time.Time) int {
	cooldown := template.Cooldown()
	active := 0
	for _, item := range inventory {
		if item.TemplateID != template.ID {
			continue
		}
		if item.IsUsed {
			if IsGhost(item, cooldown, now) {
				active++
			}
			continue
		}
		if item.ExpiresAt != nil && now.After(*item.ExpiresAt) {
			continue
		}
		active += max(item.Quantity, 0)
	}
	return active
}

// PriceAt computes the inflated unit price for a given active count
func PriceAt(template domain.ShopItemTemplate, activeCount int) int {
	if !template.Inflates() || activeCount <= 0 {
		return template.BasePrice
	}
	return int(math.Round(float64(template.BasePrice) * (1 + template.InflationRate*float64(activeCount))))
}

// PriceFor evaluates a template's current price against an inventory snapshot.
// Only the tickets category inflates; every other category is returned at base price.
func PriceFor(template domain.ShopItemTemplate, inventory []domain.InventoryItem, now time.Time) domain.ShopPrice {
	price := domain.ShopPrice{
		TemplateID:   template.ID,
		Name:         template.Name,
		Category:     template.Category,
		BasePrice:    template.BasePrice,
		CurrentPrice: template.BasePrice,
	}
	if !template.Inflates() {
		return price
	}

	active := CountActive(template, inventory, now)
	price.ActiveCount = active
	price.CurrentPrice = PriceAt(template, active)
	price.InflationPercent = template.InflationRate * float64(active) * 100
	price.IsInflated = price.CurrentPrice > template.BasePrice
	if price.IsInflated {
		// Rolling horizon: recomputed on every evaluation
		resetsAt := now.Add(template.Cooldown())
		price.ResetsAt = &resetsAt
	}
	return price
}

// CalculatePrices evaluates every template in the catalog against the same snapshot
func CalculatePrices(catalog []domain.ShopItemTemplate, inventory []domain.InventoryItem, now time.Time) []domain.ShopPrice {
	prices := make([]domain.ShopPrice, 0, len(catalog))
	for _, template := range catalog {
		prices = append(prices, PriceFor(template, inventory, now))
	}
	return prices
}

// QuoteUnits prices quantity sequential units starting from the current active count.
// Each purchased unit is active for the unit after it.
func QuoteUnits(template domain.ShopItemTemplate, activeCount, quantity int) []int {
	units := make([]int, 0, max(quantity, 0))
	for i := 0; i < quantity; i++ {
		units = append(units, PriceAt(template, activeCount+i))
	}
	return units
}

// calculateAffordableQuantity determines how many of the quoted units fit in the balance
func calculateAffordableQuantity(unitPrices []int, balance int) (quantity, cost int) {
	for _, p := range unitPrices {
		if cost+p > balance {
			break
		}
		cost += p
		quantity++
	}
	return quantity, cost
}
