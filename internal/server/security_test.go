package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "secret-key"

	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{"valid key", apiKey, apiKey, http.StatusOK},
		{"wrong key", apiKey, "wrong-key", http.StatusUnauthorized},
		{"missing key", apiKey, "", http.StatusUnauthorized},
		{"no key configured rejects everything", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewSuspiciousActivityDetector()
			h := AuthMiddleware(tt.configured, nil, detector)(okHandler())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reset", nil)
			if tt.provided != "" {
				req.Header.Set(HeaderAPIKey, tt.provided)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_RecordsFailures(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	h := AuthMiddleware("secret", nil, detector)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reset", nil)
		req.RemoteAddr = "198.51.100.4:1000"
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 3, detector.failedAuthByIP["198.51.100.4"])
}
