package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/osse101/Ascendant_Go/internal/daycycle"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode first so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, message)
}

// User-facing error messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError       = "Profile not found. Create one first."
	ErrMsgPathNotFoundError       = "Path not found"
	ErrMsgIdentityNotFoundError   = "You have not selected that path"
	ErrMsgPathSelectedError       = "You already walk that path"
	ErrMsgTaskNotFoundError       = "Task not found"
	ErrMsgSubtaskNotFoundError    = "Subtask not found"
	ErrMsgDayNotFoundError        = "No progress recorded for that day"
	ErrMsgItemNotFoundError       = "Item not found"
	ErrMsgNotEnoughCoinsError     = "Not enough coins"
	ErrMsgItemAlreadyUsedError    = "That item has already been used"
	ErrMsgInvalidQuantityError    = "Quantity must be between 1 and 100"
	ErrMsgInvalidInputError       = "Invalid request. Please check your inputs."
	ErrMsgDayAdvanceStepFailedFmt = "Day advance stopped at step %s"
)

// mapServiceErrorToUserMessage converts service errors to an HTTP status and a message
// the player can act on. Unknown errors become a generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrPathNotFound):
		return http.StatusNotFound, ErrMsgPathNotFoundError
	case errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusNotFound, ErrMsgIdentityNotFoundError
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundError
	case errors.Is(err, domain.ErrSubtaskNotFound):
		return http.StatusNotFound, ErrMsgSubtaskNotFoundError
	case errors.Is(err, domain.ErrDayNotFound):
		return http.StatusNotFound, ErrMsgDayNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrPathAlreadySelected):
		return http.StatusConflict, ErrMsgPathSelectedError
	case errors.Is(err, domain.ErrItemAlreadyUsed):
		return http.StatusConflict, ErrMsgItemAlreadyUsedError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	var stepErr *daycycle.StepError
	if errors.As(err, &stepErr) {
		return http.StatusInternalServerError, fmt.Sprintf(ErrMsgDayAdvanceStepFailedFmt, stepErr.Step)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
