package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/Ascendant_Go/internal/daycycle"
	"github.com/osse101/Ascendant_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, ErrMsgUserNotFoundError},
		{"wrapped identity not found", fmt.Errorf("load identity x: %w", domain.ErrIdentityNotFound), http.StatusNotFound, ErrMsgIdentityNotFoundError},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, ErrMsgTaskNotFoundError},
		{"subtask not found", domain.ErrSubtaskNotFound, http.StatusNotFound, ErrMsgSubtaskNotFoundError},
		{"path not found", domain.ErrPathNotFound, http.StatusNotFound, ErrMsgPathNotFoundError},
		{"item not found", domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{"path already selected", domain.ErrPathAlreadySelected, http.StatusConflict, ErrMsgPathSelectedError},
		{"item used", domain.ErrItemAlreadyUsed, http.StatusConflict, ErrMsgItemAlreadyUsedError},
		{"insufficient funds", fmt.Errorf("need 60 have 10: %w", domain.ErrInsufficientFunds), http.StatusBadRequest, ErrMsgNotEnoughCoinsError},
		{"invalid quantity", domain.ErrInvalidQuantity, http.StatusBadRequest, ErrMsgInvalidQuantityError},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
		{"step error", &daycycle.StepError{Step: daycycle.StepRolloverItems, Err: errors.New("disk")}, http.StatusInternalServerError, "Day advance stopped at step rollover_items"},
		{"internal error is hidden", errors.New("pq: relation identities does not exist"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
