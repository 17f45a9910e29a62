package economy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func ticket() domain.ShopItemTemplate {
	return domain.ShopItemTemplate{
		ID:            "streak_shield",
		Name:          "Streak Shield",
		Category:      domain.CategoryTickets,
		BasePrice:     100,
		InflationRate: 0.15,
		CooldownHours: 24,
	}
}

func owned(templateID string, quantity int) domain.InventoryItem {
	return domain.InventoryItem{ID: uuid.New(), TemplateID: templateID, Quantity: quantity, IsActive: true, AcquiredAt: testNow.Add(-time.Hour)}
}

func used(templateID string, usedAgo time.Duration) domain.InventoryItem {
	at := testNow.Add(-usedAgo)
	item := owned(templateID, 1)
	item.IsUsed = true
	item.UsedAt = &at
	return item
}

func TestPriceFor_WorkedExample(t *testing.T) {
	inventory := []domain.InventoryItem{owned("streak_shield", 2), used("streak_shield", 12*time.Hour)}

	price := PriceFor(ticket(), inventory, testNow)

	assert.Equal(t, 3, price.ActiveCount)
	assert.Equal(t, 145, price.CurrentPrice)
	assert.InDelta(t, 45.0, price.InflationPercent, 1e-9)
	assert.True(t, price.IsInflated)
	require.NotNil(t, price.ResetsAt)
	assert.Equal(t, testNow.Add(24*time.Hour), *price.ResetsAt)
}

func TestCountActive_GhostWindow(t *testing.T) {
	inventory := []domain.InventoryItem{used("streak_shield", 12*time.Hour)}

	long := ticket()
	assert.Equal(t, 1, CountActive(long, inventory, testNow), "still inside a 24h cooldown")

	short := ticket()
	short.CooldownHours = 0.5
	assert.Equal(t, 0, CountActive(short, inventory, testNow), "cooldown already over")
}

func TestCountActive_GhostBoundaryInclusive(t *testing.T) {
	inventory := []domain.InventoryItem{used("streak_shield", 24*time.Hour)}
	assert.Equal(t, 1, CountActive(ticket(), inventory, testNow))

	inventory = []domain.InventoryItem{used("streak_shield", 24*time.Hour+time.Second)}
	assert.Equal(t, 0, CountActive(ticket(), inventory, testNow))
}

func TestCountActive_IgnoresOtherTemplatesAndExpired(t *testing.T) {
	expired := owned("streak_shield", 1)
	past := testNow.Add(-time.Minute)
	expired.ExpiresAt = &past

	future := testNow.Add(time.Hour)
	fresh := owned("streak_shield", 1)
	fresh.ExpiresAt = &future

	inventory := []domain.InventoryItem{owned("rest_pass", 4), expired, fresh}
	assert.Equal(t, 1, CountActive(ticket(), inventory, testNow))
}

func TestPriceFor_NoInflation(t *testing.T) {
	price := PriceFor(ticket(), nil, testNow)
	assert.Equal(t, 100, price.CurrentPrice)
	assert.False(t, price.IsInflated)
	assert.Nil(t, price.ResetsAt)
	assert.Zero(t, price.InflationPercent)
}

func TestPriceFor_NonTicketsPassThrough(t *testing.T) {
	cosmetic := domain.ShopItemTemplate{ID: "aura_frame", Name: "Aura Frame", Category: "cosmetics", BasePrice: 500, InflationRate: 0.5}
	inventory := []domain.InventoryItem{owned("aura_frame", 5)}

	price := PriceFor(cosmetic, inventory, testNow)
	assert.Equal(t, 500, price.CurrentPrice)
	assert.Zero(t, price.ActiveCount)
	assert.False(t, price.IsInflated)
}

func TestPriceFor_ZeroRateNeverInflated(t *testing.T) {
	tmpl := ticket()
	tmpl.InflationRate = 0
	price := PriceFor(tmpl, []domain.InventoryItem{owned("streak_shield", 3)}, testNow)
	assert.Equal(t, 3, price.ActiveCount)
	assert.Equal(t, 100, price.CurrentPrice)
	assert.False(t, price.IsInflated)
	assert.Nil(t, price.ResetsAt)
}

func TestPriceFor_ResetsAtIsRolling(t *testing.T) {
	inventory := []domain.InventoryItem{owned("streak_shield", 1)}
	first := PriceFor(ticket(), inventory, testNow)
	later := PriceFor(ticket(), inventory, testNow.Add(3*time.Hour))
	require.NotNil(t, first.ResetsAt)
	require.NotNil(t, later.ResetsAt)
	assert.Equal(t, 3*time.Hour, later.ResetsAt.Sub(*first.ResetsAt))
}

func TestCalculatePrices_KeepsCatalogOrder(t *testing.T) {
	catalog := []domain.ShopItemTemplate{ticket(), {ID: "aura_frame", Name: "Aura Frame", Category: "cosmetics", BasePrice: 500}}
	prices := CalculatePrices(catalog, nil, testNow)
	require.Len(t, prices, 2)
	assert.Equal(t, "streak_shield", prices[0].TemplateID)
	assert.Equal(t, "aura_frame", prices[1].TemplateID)
}

func TestQuoteUnits(t *testing.T) {
	assert.Equal(t, []int{100, 115, 130}, QuoteUnits(ticket(), 0, 3))
	assert.Equal(t, []int{130, 145}, QuoteUnits(ticket(), 2, 2))
	assert.Empty(t, QuoteUnits(ticket(), 0, 0))
}

func TestCalculateAffordableQuantity(t *testing.T) {
	tests := []struct {
		name         string
		units        []int
		balance      int
		wantQuantity int
		wantCost     int
	}{
		{"all affordable", []int{100, 115, 130}, 500, 3, 345},
		{"partial", []int{100, 115, 130}, 220, 2, 215},
		{"exact", []int{100, 115}, 215, 2, 215},
		{"none", []int{100}, 99, 0, 0},
		{"free items", []int{0, 0}, 0, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, c := calculateAffordableQuantity(tt.units, tt.balance)
			assert.Equal(t, tt.wantQuantity, q)
			assert.Equal(t, tt.wantCost, c)
		})
	}
}

func BenchmarkCalculatePricesMixedInventory(b *testing.B) {
	catalog := []domain.ShopItemTemplate{ticket()}
	inventory := make([]domain.InventoryItem, 0, 200)
	for i := 0; i < 100; i++ {
		inventory = append(inventory, owned("streak_shield", 1), used("streak_shield", time.Duration(i)*time.Hour))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CalculatePrices(catalog, inventory, testNow)
	}
}
