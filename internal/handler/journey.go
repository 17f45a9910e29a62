package handler

import (
	"net/http"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/journey"
	"github.com/osse101/Ascendant_Go/internal/logger"
)

// SelectPathRequest picks a path by key or name
type SelectPathRequest struct {
	UserID string `json:"user_id" validate:"required,max=64,userid"`
	Path   string `json:"path" validate:"required,max=64"`
}

// ToggleRequest identifies the player flipping a task or subtask
type ToggleRequest struct {
	UserID string `json:"user_id" validate:"required,max=64,userid"`
}

// PathSummary is the public view of a path definition
type PathSummary struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Stat        string `json:"stat"`
	TaskCount   int    `json:"task_count"`
}

// HandleListPaths returns the path catalog
// @Summary List paths
// @Tags journey
// @Produce json
// @Success 200 {array} PathSummary
// @Router /api/v1/paths [get]
func HandleListPaths(svc journey.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs := svc.ListPaths()
		out := make([]PathSummary, 0, len(defs))
		for _, p := range defs {
			out = append(out, PathSummary{
				Key:         p.Key,
				Name:        p.Name,
				Description: p.Description,
				Stat:        string(p.Stat),
				TaskCount:   len(p.Tasks),
			})
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// HandleSelectPath creates the player's identity on a path
// @Summary Select path
// @Tags journey
// @Accept json
// @Produce json
// @Param request body SelectPathRequest true "Path selection"
// @Success 201 {object} domain.Identity
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/paths/select [post]
func HandleSelectPath(svc journey.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectPathRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpSelectPath); err != nil {
			return
		}

		identity, err := svc.SelectPath(r.Context(), req.UserID, req.Path)
		if err != nil {
			respondServiceError(w, r, OpSelectPath, err)
			return
		}
		respondJSON(w, http.StatusCreated, identity)
	}
}

// HandleGetIdentities lists the paths the player walks
// @Summary List identities
// @Tags journey
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.Identity
// @Router /api/v1/identities [get]
func HandleGetIdentities(svc journey.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDParam(r, w)
		if !ok {
			return
		}

		identities, err := svc.GetIdentities(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetIdentities, err)
			return
		}
		if identities == nil {
			identities = []domain.Identity{}
		}
		respondJSON(w, http.StatusOK, identities)
	}
}

// HandleGetToday returns the identity with today's tasks and progress
// @Summary Today's tasks
// @Tags journey
// @Produce json
// @Param identityID path string true "Identity ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} journey.Today
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/identities/{identityID}/today [get]
func HandleGetToday(svc journey.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identityID, ok := GetPathParam(r, w, ParamIdentityID)
		if !ok {
			return
		}
		userID, ok := GetUserIDParam(r, w)
		if !ok {
			return
		}

		today, err := svc.GetToday(r.Context(), userID, identityID)
		if err != nil {
			respondServiceError(w, r, OpGetToday, err)
			return
		}
		respondJSON(w, http.StatusOK, today)
	}
}

// HandleToggleTask flips a task's completion and applies its rewards
// @Summary Toggle task
// @Tags journey
// @Accept json
// @Produce json
// @Param identityID path string true "Identity ID"
// @Param taskID path string true "Task ID"
// @Param request body ToggleRequest true "Player"
// @Success 200 {object} journey.ToggleOutcome
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/identities/{identityID}/tasks/{taskID}/toggle [post]
func HandleToggleTask(svc journey.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identityID, ok := GetPathParam(r, w, ParamIdentityID)
		if !ok {
			return
		}
		taskID, ok := GetPathParam(r, w, ParamTaskID)
		if !ok {
			return
		}
		var req ToggleRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpToggleTask); err != nil {
			return
		}

		outcome, err := svc.ToggleTask(r.Context(), req.UserID, identityID, taskID)
		if err != nil {
			respondServiceError(w, r, OpToggleTask, err)
			return
		}
		if outcome.LeveledUp {
			logger.FromContext(r.Context()).Info("Identity leveled up", "user_id", req.UserID, "level", outcome.Identity.Level)
		}
		respondJSON(w, http.StatusOK, outcome)
	}
}

// HandleToggleSubtask flips a subtask. Checking the last open subtask completes the parent.
// @Summary Toggle subtask
// @Tags journey
// @Accept json
// @Produce json
// @Param identityID path string true "Identity ID"
// @Param taskID path string true "Task ID"
// @Param subtaskID path string true "Subtask ID"
// @Param request body ToggleRequest true "Player"
// @Success 200 {object} journey.SubtaskOutcome
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/identities/{identityID}/tasks/{taskID}/subtasks/{subtaskID}/toggle [post]
func HandleToggleSubtask(svc journey.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identityID, ok := GetPathParam(r, w, ParamIdentityID)
		if !ok {
			return
		}
		taskID, ok := GetPathParam(r, w, ParamTaskID)
		if !ok {
			return
		}
		subtaskID, ok := GetPathParam(r, w, ParamSubtaskID)
		if !ok {
			return
		}
		var req ToggleRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpToggleSubtask); err != nil {
			return
		}

		outcome, err := svc.ToggleSubtask(r.Context(), req.UserID, identityID, taskID, subtaskID)
		if err != nil {
			respondServiceError(w, r, OpToggleSubtask, err)
			return
		}
		respondJSON(w, http.StatusOK, outcome)
	}
}
