package economy

import (
	"fmt"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// validateBuyRequest validates the buy request parameters
func validateBuyRequest(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf(ErrMsgInvalidQuantityFmt, quantity, domain.ErrInvalidQuantity)
	}
	if quantity > MaxPurchaseQuantity {
		return fmt.Errorf(ErrMsgQuantityExceedsMaxFmt, quantity, MaxPurchaseQuantity, domain.ErrInvalidQuantity)
	}
	return nil
}
