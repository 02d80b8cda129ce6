// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"net/http"

	"go.uber.org/zap"
)

// Handler serves the liveness probe. Unlike /health it touches no
// backend: it answers as long as the process is serving requests.
type Handler struct {
	Log *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve handles GET /heartbeat with a plain 200 OK.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
