package handler

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/eventlog"
)

// HandleGetHistory returns the player's logged events, newest first
// @Summary Activity history
// @Description Task toggles, level ups, milestones, purchases and day advances recorded for the player
// @Tags history
// @Produce json
// @Param user_id query string true "User ID"
// @Param type query string false "Event type filter, e.g. task.toggled"
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {array} domain.ActivityEntry
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/history [get]
func HandleGetHistory(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDParam(r, w)
		if !ok {
			return
		}

		eventType := r.URL.Query().Get(ParamEventType)
		if eventType != "" && !slices.Contains(event.AllTypes, event.Type(eventType)) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgUnknownEventType, eventType))
			return
		}

		limit := 0
		if raw := r.URL.Query().Get(ParamLimit); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = n
		}

		entries, err := svc.History(r.Context(), userID, eventType, limit)
		if err != nil {
			respondServiceError(w, r, OpGetHistory, err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}
