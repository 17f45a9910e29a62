package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/economy"
	"github.com/osse101/Ascendant_Go/internal/logger"
)

// BuyItemRequest buys one or more units of a shop item. Item may be an id or a fuzzy name.
type BuyItemRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64,userid"`
	Item     string `json:"item" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=100"`
}

// UseItemRequest consumes an owned item instance
type UseItemRequest struct {
	UserID string `json:"user_id" validate:"required,max=64,userid"`
	ItemID string `json:"item_id" validate:"required,uuid"`
}

// HandleGetShopPrices returns every shop item priced for this player right now
// @Summary Shop prices
// @Description Current prices including inflation from the player's active items
// @Tags shop
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.ShopPrice
// @Router /api/v1/shop/prices [get]
func HandleGetShopPrices(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDParam(r, w)
		if !ok {
			return
		}

		prices, err := svc.GetShopPrices(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetPrices, err)
			return
		}
		logger.FromContext(r.Context()).Debug("Shop prices retrieved", "user_id", userID, "count", len(prices))
		respondJSON(w, http.StatusOK, prices)
	}
}

// HandleBuyItem buys as many of the requested units as the balance covers
// @Summary Buy item
// @Tags shop
// @Accept json
// @Produce json
// @Param request body BuyItemRequest true "Purchase"
// @Success 200 {object} domain.PurchaseResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shop/buy [post]
func HandleBuyItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpBuyItem); err != nil {
			return
		}

		result, err := svc.BuyItem(r.Context(), req.UserID, req.Item, req.Quantity)
		if err != nil {
			respondServiceError(w, r, OpBuyItem, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetInventory lists the player's items, used ones included
// @Summary Inventory
// @Tags shop
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.InventoryItem
// @Router /api/v1/inventory [get]
func HandleGetInventory(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDParam(r, w)
		if !ok {
			return
		}

		items, err := svc.GetInventory(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetInventory, err)
			return
		}
		if items == nil {
			items = []domain.InventoryItem{}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

// HandleUseItem consumes an item
// @Summary Use item
// @Tags shop
// @Accept json
// @Produce json
// @Param request body UseItemRequest true "Item"
// @Success 200 {object} domain.InventoryItem
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/inventory/use [post]
func HandleUseItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UseItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpUseItem); err != nil {
			return
		}
		itemID, err := uuid.Parse(req.ItemID)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidItemID)
			return
		}

		item, err := svc.UseItem(r.Context(), req.UserID, itemID)
		if err != nil {
			respondServiceError(w, r, OpUseItem, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}
