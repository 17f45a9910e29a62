// Package server wires the HTTP router, middleware and lifecycle
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/Ascendant_Go/internal/daycycle"
	"github.com/osse101/Ascendant_Go/internal/economy"
	"github.com/osse101/Ascendant_Go/internal/eventlog"
	"github.com/osse101/Ascendant_Go/internal/handler"
	"github.com/osse101/Ascendant_Go/internal/journey"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/metrics"
	"github.com/osse101/Ascendant_Go/internal/profile"
)

// Services are the domain services exposed over HTTP
type Services struct {
	Journey  journey.Service
	Economy  economy.Service
	Profile  profile.Service
	DayCycle daycycle.Service
	// History is optional; /api/v1/history is only mounted when set
	History eventlog.Service
}

// Options configures the server
type Options struct {
	Port           int
	APIKey         string // empty disables the admin routes
	TrustedProxies []string
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, db handler.Pinger, svcs Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, db, svcs),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router with the full middleware stack
func NewRouter(opts Options, db handler.Pinger, svcs Services) chi.Router {
	r := chi.NewRouter()

	// Chi runs middleware outermost first
	detector := NewSuspiciousActivityDetector()
	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(db))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/profile", func(r chi.Router) {
			r.Post("/", handler.HandleEnsureProfile(svcs.Profile))
			r.Get("/", handler.HandleGetProfile(svcs.Profile))
			r.Get("/rank", handler.HandleGetRank(svcs.Profile))
			r.Get("/seals", handler.HandleGetSeals(svcs.Profile))
		})

		r.Route("/paths", func(r chi.Router) {
			r.Get("/", handler.HandleListPaths(svcs.Journey))
			r.Post("/select", handler.HandleSelectPath(svcs.Journey))
		})

		r.Route("/identities", func(r chi.Router) {
			r.Get("/", handler.HandleGetIdentities(svcs.Journey))
			r.Route("/{identityID}", func(r chi.Router) {
				r.Get("/today", handler.HandleGetToday(svcs.Journey))
				r.Post("/tasks/{taskID}/toggle", handler.HandleToggleTask(svcs.Journey))
				r.Post("/tasks/{taskID}/subtasks/{subtaskID}/toggle", handler.HandleToggleSubtask(svcs.Journey))
			})
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/prices", handler.HandleGetShopPrices(svcs.Economy))
			r.Post("/buy", handler.HandleBuyItem(svcs.Economy))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(svcs.Economy))
			r.Post("/use", handler.HandleUseItem(svcs.Economy))
		})

		if svcs.History != nil {
			r.Get("/history", handler.HandleGetHistory(svcs.History))
		}

		if opts.APIKey == "" {
			logger.Warn(LogMsgAdminDisabled)
			return
		}
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
			r.Post("/advance-day", handler.HandleAdvanceDay(svcs.DayCycle))
			r.Post("/reset", handler.HandleResetAccount(svcs.Profile))
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		if userID := r.URL.Query().Get("user_id"); userID != "" {
			ctx = logger.WithUserID(ctx, userID)
		}
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server. It returns http.ErrServerClosed after Stop.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
