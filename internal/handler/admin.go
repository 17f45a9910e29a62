package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/Ascendant_Go/internal/daycycle"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/profile"
)

// AdvanceDayRequest advances one user's day, or everyone's when UserID is empty
type AdvanceDayRequest struct {
	UserID string `json:"user_id" validate:"omitempty,max=64,userid"`
}

// AdvanceAllResponse reports a rollover across every user
type AdvanceAllResponse struct {
	Advanced int    `json:"advanced"`
	Error    string `json:"error,omitempty"`
}

// AdvanceDayFailureResponse carries the partial summary of a day advance that stopped early
type AdvanceDayFailureResponse struct {
	Error   string            `json:"error"`
	Step    daycycle.Step     `json:"step"`
	Summary *daycycle.Summary `json:"summary,omitempty"`
}

// ResetAccountRequest wipes a user's progress
type ResetAccountRequest struct {
	UserID string `json:"user_id" validate:"required,max=64,userid"`
}

// HandleAdvanceDay runs the day cycle outside the schedule
// @Summary Advance day
// @Description Runs the day cycle for one user, or for every user when user_id is omitted
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdvanceDayRequest false "Target user"
// @Success 200 {object} daycycle.Summary
// @Failure 500 {object} AdvanceDayFailureResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/advance-day [post]
func HandleAdvanceDay(svc daycycle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdvanceDayRequest
		// An empty body means every user
		if r.ContentLength != 0 {
			if err := DecodeAndValidateRequest(r, w, &req, OpAdvanceDay); err != nil {
				return
			}
		}
		log := logger.FromContext(r.Context())

		if req.UserID == "" {
			advanced, err := svc.AdvanceDayForAll(r.Context())
			if err != nil {
				log.Error("Advance day for all failed", "error", err, "advanced", advanced)
				respondJSON(w, http.StatusInternalServerError, AdvanceAllResponse{Advanced: advanced, Error: ErrMsgGenericServerError})
				return
			}
			respondJSON(w, http.StatusOK, AdvanceAllResponse{Advanced: advanced})
			return
		}

		summary, err := svc.AdvanceDay(r.Context(), req.UserID)
		if err != nil {
			var stepErr *daycycle.StepError
			if errors.As(err, &stepErr) {
				status, message := mapServiceErrorToUserMessage(err)
				log.Error("Advance day stopped", "user_id", req.UserID, "step", stepErr.Step, "error", err)
				respondJSON(w, status, AdvanceDayFailureResponse{Error: message, Step: stepErr.Step, Summary: summary})
				return
			}
			respondServiceError(w, r, OpAdvanceDay, err)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}

// HandleResetAccount deletes a user's identities, progress, seals and inventory
// @Summary Reset account
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ResetAccountRequest true "Target user"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/reset [post]
func HandleResetAccount(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpResetAccount); err != nil {
			return
		}

		if err := svc.ResetAccount(r.Context(), req.UserID); err != nil {
			respondServiceError(w, r, OpResetAccount, err)
			return
		}
		logger.FromContext(r.Context()).Info("Account reset", "user_id", req.UserID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAccountResetSuccess})
	}
}
