package handler

import (
	"net/http"

	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/profile"
)

// EnsureProfileRequest creates a profile on first use
type EnsureProfileRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64,userid"`
	Username string `json:"username" validate:"max=64"`
}

// HandleEnsureProfile returns the player's profile, creating it if needed
// @Summary Ensure profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body EnsureProfileRequest true "Profile"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/profile [post]
func HandleEnsureProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EnsureProfileRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpEnsureProfile); err != nil {
			return
		}

		p, err := svc.EnsureProfile(r.Context(), req.UserID, req.Username)
		if err != nil {
			respondServiceError(w, r, OpEnsureProfile, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandleGetProfile returns the full profile overview
// @Summary Profile overview
// @Description Profile, identities, overall rank, character stage and seals
// @Tags profile
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} profile.Overview
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/profile [get]
func HandleGetProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDParam(r, w)
		if !ok {
			return
		}

		overview, err := svc.GetOverview(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetProfile, err)
			return
		}
		logger.FromContext(r.Context()).Debug("Profile overview built", "user_id", userID, "rank", overview.Rank.Tier)
		respondJSON(w, http.StatusOK, overview)
	}
}

// HandleGetRank returns the overall rank
// @Summary Overall rank
// @Tags profile
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.OverallRank
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/profile/rank [get]
func HandleGetRank(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDParam(r, w)
		if !ok {
			return
		}

		rank, err := svc.GetRank(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetRank, err)
			return
		}
		respondJSON(w, http.StatusOK, rank)
	}
}

// HandleGetSeals returns every seal with its progress
// @Summary Seals
// @Tags profile
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} profile.SealView
// @Router /api/v1/profile/seals [get]
func HandleGetSeals(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDParam(r, w)
		if !ok {
			return
		}

		seals, err := svc.GetSeals(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetSeals, err)
			return
		}
		if seals == nil {
			seals = []profile.SealView{}
		}
		respondJSON(w, http.StatusOK, seals)
	}
}
