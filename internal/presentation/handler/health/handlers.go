package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hilthontt/powersite/internal/infrastructure/json"
)

// Pinger reports whether the database answers.
type Pinger func(ctx context.Context) error

type Handler struct {
	ping    Pinger
	started time.Time
	healthy atomic.Bool
}

func NewHandler(ping Pinger) *Handler {
	h := &Handler{ping: ping, started: time.Now()}
	h.healthy.Store(true)
	return h
}

// SetHealthy flips liveness, e.g. while draining on shutdown.
func (h *Handler) SetHealthy(ok bool) {
	h.healthy.Store(ok)
}

// GetHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API, including uptime and current timestamp
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is healthy"
// @Failure      503 {object} healthResponse "Service is unhealthy"
// @Router       /health [get]
// @Router       /healthz [get]
// @Router       /live [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := h.response("ok")
	if !h.healthy.Load() {
		resp.Status = "unhealthy"
		json.Write(w, http.StatusServiceUnavailable, resp)
		return
	}

	json.Write(w, http.StatusOK, resp)
}

// GetReady godoc
// @Summary      Readiness check
// @Description  Like /health but also pings the database
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service can take traffic"
// @Failure      503 {object} healthResponse "Database unreachable"
// @Router       /ready [get]
func (h *Handler) GetReady(w http.ResponseWriter, r *http.Request) {
	resp := h.response("ok")
	resp.Database = "ok"

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			resp.Database = "unreachable"
			resp.Status = "unhealthy"
		}
	}
	if !h.healthy.Load() {
		resp.Status = "unhealthy"
	}

	if resp.Status != "ok" {
		json.Write(w, http.StatusServiceUnavailable, resp)
		return
	}
	json.Write(w, http.StatusOK, resp)
}

func (h *Handler) response(status string) healthResponse {
	return healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}
}
