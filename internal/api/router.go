package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/fiidash/internal/api/handlers"
	"github.com/wonny/fiidash/pkg/logger"
	"github.com/wonny/fiidash/pkg/metrics"
)

// NewRouter creates and configures the HTTP router.
// refreshHandler may be nil, in which case POST /api/refresh is not mounted.
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(fundHandler *handlers.FundHandler, refreshHandler *handlers.RefreshHandler, log *logger.Logger, withMetrics bool) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	if withMetrics {
		r.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	// Dashboard page
	r.HandleFunc("/", fundHandler.GetPage).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Fund endpoints
	api.HandleFunc("/fiis", fundHandler.GetFunds).Methods("GET")
	api.HandleFunc("/sectors", fundHandler.GetSectors).Methods("GET")
	api.HandleFunc("/recommendations", fundHandler.GetRecommendations).Methods("GET")

	// Chart endpoints
	api.HandleFunc("/charts/sectors", fundHandler.GetSectorChart).Methods("GET")
	api.HandleFunc("/charts/pvp-dy", fundHandler.GetBubbleChart).Methods("GET")

	if refreshHandler != nil {
		api.HandleFunc("/refresh", refreshHandler.Refresh).Methods("POST")
	}

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "fiidash",
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// loggingMiddleware logs HTTP requests and counts them per route
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			// Call next handler
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()

			// Log request
			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
