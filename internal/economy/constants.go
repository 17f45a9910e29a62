package economy

// MaxPurchaseQuantity caps a single buy request
const MaxPurchaseQuantity = 100

// ==================== Error Messages ====================

// Formatted error messages for items
const (
	ErrMsgInsufficientFundsToBuyOneFmt = "insufficient funds to buy even one %s (cost: %d, balance: %d): %w"
	ErrMsgItemExpiredFmt               = "item %s expired at %s: %w"
)

// Formatted error messages for validation
const (
	ErrMsgInvalidQuantityFmt    = "invalid quantity: %d: %w"
	ErrMsgQuantityExceedsMaxFmt = "quantity %d exceeds maximum allowed (%d): %w"
)

// Database operation error messages
const (
	ErrMsgGetProfileFailed        = "failed to get profile: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgGetInventoryFailed      = "failed to get inventory: %w"
	ErrMsgGetItemFailed           = "failed to get inventory item: %w"
	ErrMsgUpdateProfileFailed     = "failed to debit coins: %w"
	ErrMsgAddItemFailed           = "failed to add inventory item: %w"
	ErrMsgMarkUsedFailed          = "failed to mark item used: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// Shutdown error messages
const (
	ErrMsgShutdownTimedOut = "shutdown timed out: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgGetShopPricesCalled = "GetShopPrices called"
	LogMsgBuyItemCalled       = "BuyItem called"
	LogMsgItemPurchased       = "Item purchased"
	LogMsgAdjustedPurchaseQty = "Adjusted purchase quantity due to funds"
	LogMsgUseItemCalled       = "UseItem called"
	LogMsgItemUsed            = "Item used"
	LogMsgFuzzyMatched        = "Shop query resolved by fuzzy match"
	LogMsgPublishFailed       = "Failed to publish shop event"
	LogMsgEconomyShuttingDown = "Economy service shutting down, waiting for background tasks..."
)
