package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/economy"
)

func shopRouter(svc economy.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/shop/prices", HandleGetShopPrices(svc))
	r.Post("/shop/buy", HandleBuyItem(svc))
	r.Get("/inventory", HandleGetInventory(svc))
	r.Post("/inventory/use", HandleUseItem(svc))
	return r
}

func TestHandleGetShopPrices(t *testing.T) {
	svc := new(MockEconomyService)
	prices := []domain.ShopPrice{{TemplateID: "focus_tea", BasePrice: 50, CurrentPrice: 55, InflationPercent: 10, IsInflated: true}}
	svc.On("GetShopPrices", mock.Anything, "u1").Return(prices, nil)

	rec := serve(shopRouter(svc), http.MethodGet, "/shop/prices?user_id=u1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.ShopPrice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 55, got[0].CurrentPrice)
}

func TestHandleBuyItem(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*MockEconomyService)
		wantStatus int
		wantInBody string
	}{
		{
			name: "partial purchase",
			body: `{"user_id":"u1","item":"tea","quantity":3}`,
			setup: func(m *MockEconomyService) {
				m.On("BuyItem", mock.Anything, "u1", "tea", 3).Return(&domain.PurchaseResult{
					TemplateID: "focus_tea", Quantity: 2, Requested: 3, TotalCost: 105, Balance: 5, FuzzyMatched: true,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantInBody: `"quantity":2`,
		},
		{
			name: "insufficient funds",
			body: `{"user_id":"u1","item":"focus_tea","quantity":1}`,
			setup: func(m *MockEconomyService) {
				m.On("BuyItem", mock.Anything, "u1", "focus_tea", 1).Return(nil, domain.ErrInsufficientFunds)
			},
			wantStatus: http.StatusBadRequest,
			wantInBody: ErrMsgNotEnoughCoinsError,
		},
		{
			name: "unknown item",
			body: `{"user_id":"u1","item":"dragon","quantity":1}`,
			setup: func(m *MockEconomyService) {
				m.On("BuyItem", mock.Anything, "u1", "dragon", 1).Return(nil, domain.ErrItemNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantInBody: ErrMsgItemNotFoundError,
		},
		{
			name:       "zero quantity",
			body:       `{"user_id":"u1","item":"tea","quantity":0}`,
			setup:      func(m *MockEconomyService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: `"quantity"`,
		},
		{
			name:       "quantity above max",
			body:       `{"user_id":"u1","item":"tea","quantity":101}`,
			setup:      func(m *MockEconomyService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "Must be at most 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockEconomyService)
			tt.setup(svc)

			rec := serve(shopRouter(svc), http.MethodPost, "/shop/buy", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleUseItem(t *testing.T) {
	itemID := uuid.New()

	t.Run("marks the item used", func(t *testing.T) {
		svc := new(MockEconomyService)
		svc.On("UseItem", mock.Anything, "u1", itemID).Return(&domain.InventoryItem{ID: itemID, TemplateID: "focus_tea", IsUsed: true}, nil)

		rec := serve(shopRouter(svc), http.MethodPost, "/inventory/use", `{"user_id":"u1","item_id":"`+itemID.String()+`"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"is_used":true`)
	})

	t.Run("already used", func(t *testing.T) {
		svc := new(MockEconomyService)
		svc.On("UseItem", mock.Anything, "u1", itemID).Return(nil, domain.ErrItemAlreadyUsed)

		rec := serve(shopRouter(svc), http.MethodPost, "/inventory/use", `{"user_id":"u1","item_id":"`+itemID.String()+`"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("item id must be a uuid", func(t *testing.T) {
		svc := new(MockEconomyService)

		rec := serve(shopRouter(svc), http.MethodPost, "/inventory/use", `{"user_id":"u1","item_id":"42"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Must be a UUID")
		svc.AssertNotCalled(t, "UseItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleGetInventory(t *testing.T) {
	svc := new(MockEconomyService)
	svc.On("GetInventory", mock.Anything, "u1").Return([]domain.InventoryItem{{ID: uuid.New(), TemplateID: "streak_shield", Quantity: 1}}, nil)

	rec := serve(shopRouter(svc), http.MethodGet, "/inventory?user_id=u1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "streak_shield")
}
