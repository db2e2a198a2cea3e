package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/wonny/fiidash/internal/pipeline"
	"github.com/wonny/fiidash/pkg/logger"
)

// Refresher runs the fetch/process/render chain
type Refresher interface {
	Run(ctx context.Context) (*pipeline.RunResult, error)
}

// refreshWriteSlack leaves room to write the response after the run deadline
const refreshWriteSlack = 10 * time.Second

// RefreshHandler triggers a data refresh on demand
type RefreshHandler struct {
	refresher Refresher
	timeout   time.Duration
	logger    *logger.Logger

	mu      sync.Mutex
	running bool
}

// NewRefreshHandler creates a refresh handler. A run is cancelled after
// timeout; timeout <= 0 means no limit beyond the request context.
func NewRefreshHandler(refresher Refresher, timeout time.Duration, log *logger.Logger) *RefreshHandler {
	return &RefreshHandler{
		refresher: refresher,
		timeout:   timeout,
		logger:    log,
	}
}

// RefreshResponse represents a refresh response
type RefreshResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Result  *pipeline.RunResult `json:"result,omitempty"`
}

// Refresh runs the pipeline synchronously; concurrent calls get 409
// POST /api/refresh
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		respondError(w, http.StatusConflict, "Refresh already running")
		return
	}
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	h.logger.Info("Refresh triggered")

	ctx := r.Context()
	if h.timeout > 0 {
		// 서버 WriteTimeout은 조회용이라 짧음
		deadline := time.Now().Add(h.timeout + refreshWriteSlack)
		if err := http.NewResponseController(w).SetWriteDeadline(deadline); err != nil {
			h.logger.WithError(err).Debug("Write deadline not extended")
		}

		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.refresher.Run(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Refresh failed")
		respondError(w, http.StatusBadGateway, "Failed to refresh data")
		return
	}

	respondJSON(w, http.StatusOK, RefreshResponse{
		Status:  "success",
		Message: "Data refreshed",
		Result:  result,
	})
}
