package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Path errors
	ErrMsgPathNotFound        = "path not found"
	ErrMsgIdentityNotFound    = "identity not found"
	ErrMsgPathAlreadySelected = "path already selected"
	ErrMsgTaskNotFound        = "task not found"
	ErrMsgSubtaskNotFound     = "subtask not found"
	ErrMsgDayNotFound         = "daily progress not found"

	// Shop errors
	ErrMsgItemNotFound      = "item not found"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgItemAlreadyUsed   = "item already used"
	ErrMsgInvalidQuantity   = "invalid quantity"

	// Configuration errors
	ErrMsgInvalidTables = "invalid game tables"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	ErrPathNotFound        = errors.New(ErrMsgPathNotFound)
	ErrIdentityNotFound    = errors.New(ErrMsgIdentityNotFound)
	ErrPathAlreadySelected = errors.New(ErrMsgPathAlreadySelected)
	ErrTaskNotFound        = errors.New(ErrMsgTaskNotFound)
	ErrSubtaskNotFound     = errors.New(ErrMsgSubtaskNotFound)
	ErrDayNotFound         = errors.New(ErrMsgDayNotFound)

	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrItemAlreadyUsed   = errors.New(ErrMsgItemAlreadyUsed)
	ErrInvalidQuantity   = errors.New(ErrMsgInvalidQuantity)

	ErrInvalidTables = errors.New(ErrMsgInvalidTables)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
