package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/journey"
)

func journeyRouter(svc journey.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/paths", HandleListPaths(svc))
	r.Post("/paths/select", HandleSelectPath(svc))
	r.Get("/identities", HandleGetIdentities(svc))
	r.Get("/identities/{identityID}/today", HandleGetToday(svc))
	r.Post("/identities/{identityID}/tasks/{taskID}/toggle", HandleToggleTask(svc))
	r.Post("/identities/{identityID}/tasks/{taskID}/subtasks/{subtaskID}/toggle", HandleToggleSubtask(svc))
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleListPaths(t *testing.T) {
	svc := new(MockJourneyService)
	svc.On("ListPaths").Return(gamedata.Default().Paths)

	rec := serve(journeyRouter(svc), http.MethodGet, "/paths", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var paths []PathSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paths))
	require.NotEmpty(t, paths)
	assert.Equal(t, "warrior", paths[0].Key)
	assert.Positive(t, paths[0].TaskCount)
}

func TestHandleSelectPath(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*MockJourneyService)
		wantStatus int
		wantInBody string
	}{
		{
			name: "created",
			body: `{"user_id":"u1","path":"sage"}`,
			setup: func(m *MockJourneyService) {
				m.On("SelectPath", mock.Anything, "u1", "sage").
					Return(&domain.Identity{ID: "id-1", UserID: "u1", PathKey: "sage", Level: 1}, nil)
			},
			wantStatus: http.StatusCreated,
			wantInBody: `"path_key":"sage"`,
		},
		{
			name: "already selected",
			body: `{"user_id":"u1","path":"sage"}`,
			setup: func(m *MockJourneyService) {
				m.On("SelectPath", mock.Anything, "u1", "sage").Return(nil, domain.ErrPathAlreadySelected)
			},
			wantStatus: http.StatusConflict,
			wantInBody: ErrMsgPathSelectedError,
		},
		{
			name: "unknown path",
			body: `{"user_id":"u1","path":"bard"}`,
			setup: func(m *MockJourneyService) {
				m.On("SelectPath", mock.Anything, "u1", "bard").Return(nil, domain.ErrPathNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantInBody: ErrMsgPathNotFoundError,
		},
		{
			name:       "missing path",
			body:       `{"user_id":"u1"}`,
			setup:      func(m *MockJourneyService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: `"path":"This field is required"`,
		},
		{
			name:       "malformed json",
			body:       `{"user_id":`,
			setup:      func(m *MockJourneyService) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: ErrMsgInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockJourneyService)
			tt.setup(svc)

			rec := serve(journeyRouter(svc), http.MethodPost, "/paths/select", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGetIdentities_EmptyListIsArray(t *testing.T) {
	svc := new(MockJourneyService)
	svc.On("GetIdentities", mock.Anything, "u1").Return(nil, nil)

	rec := serve(journeyRouter(svc), http.MethodGet, "/identities?user_id=u1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleGetToday(t *testing.T) {
	t.Run("returns today", func(t *testing.T) {
		svc := new(MockJourneyService)
		today := &journey.Today{
			Identity: domain.Identity{ID: "id-1", PathKey: "sage"},
			Progress: domain.DailyProgress{TotalTasks: 3},
		}
		svc.On("GetToday", mock.Anything, "u1", "id-1").Return(today, nil)

		rec := serve(journeyRouter(svc), http.MethodGet, "/identities/id-1/today?user_id=u1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got journey.Today
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "sage", got.Identity.PathKey)
		assert.Equal(t, 3, got.Progress.TotalTasks)
	})

	t.Run("missing user id", func(t *testing.T) {
		svc := new(MockJourneyService)
		rec := serve(journeyRouter(svc), http.MethodGet, "/identities/id-1/today", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing user_id query parameter")
		svc.AssertNotCalled(t, "GetToday", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown identity is a 404", func(t *testing.T) {
		svc := new(MockJourneyService)
		svc.On("GetToday", mock.Anything, "u1", "nope").Return(nil, domain.ErrIdentityNotFound)

		rec := serve(journeyRouter(svc), http.MethodGet, "/identities/nope/today?user_id=u1", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleToggleTask(t *testing.T) {
	t.Run("returns the outcome", func(t *testing.T) {
		svc := new(MockJourneyService)
		outcome := &journey.ToggleOutcome{
			Identity:  domain.Identity{ID: "id-1", Level: 2},
			TaskID:    "meditate",
			Completed: true,
			LeveledUp: true,
		}
		svc.On("ToggleTask", mock.Anything, "u1", "id-1", "meditate").Return(outcome, nil)

		rec := serve(journeyRouter(svc), http.MethodPost, "/identities/id-1/tasks/meditate/toggle", `{"user_id":"u1"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var got journey.ToggleOutcome
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Completed)
		assert.True(t, got.LeveledUp)
		svc.AssertExpectations(t)
	})

	t.Run("unknown task is a 404", func(t *testing.T) {
		svc := new(MockJourneyService)
		svc.On("ToggleTask", mock.Anything, "u1", "id-1", "fly").Return(nil, domain.ErrTaskNotFound)

		rec := serve(journeyRouter(svc), http.MethodPost, "/identities/id-1/tasks/fly/toggle", `{"user_id":"u1"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgTaskNotFoundError)
	})

	t.Run("blank user is rejected", func(t *testing.T) {
		svc := new(MockJourneyService)
		rec := serve(journeyRouter(svc), http.MethodPost, "/identities/id-1/tasks/meditate/toggle", `{"user_id":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleToggleSubtask(t *testing.T) {
	svc := new(MockJourneyService)
	outcome := &journey.SubtaskOutcome{
		TaskID:    "study",
		SubtaskID: "chapter",
		Completed: true,
		Parent:    &journey.ToggleOutcome{TaskID: "study", Completed: true},
	}
	svc.On("ToggleSubtask", mock.Anything, "u1", "id-1", "study", "chapter").Return(outcome, nil)

	rec := serve(journeyRouter(svc), http.MethodPost, "/identities/id-1/tasks/study/subtasks/chapter/toggle", `{"user_id":"u1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got journey.SubtaskOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Parent)
	assert.True(t, got.Parent.Completed)
}
