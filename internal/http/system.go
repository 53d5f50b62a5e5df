package http

import (
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/pkg/api"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// handleLivez godoc
//
//	@Summary	Liveness probe
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	api.HealthResponse
//	@Router		/livez [get]
func (rt *Router) handleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Uptime:  time.Since(rt.started).Round(time.Second).String(),
		Version: rt.Version,
	})
}

// handleReadyz godoc
//
//	@Summary	Readiness probe, verifies the database connection
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	api.HealthResponse
//	@Failure	503	{object}	api.MessageResponse
//	@Router		/readyz [get]
func (rt *Router) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := rt.Store.Ping(r.Context()); err != nil {
		slogx.FromContext(r.Context()).Error("readiness probe failed", "err", err)
		httpx.WriteMessage(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Uptime:  time.Since(rt.started).Round(time.Second).String(),
		Version: rt.Version,
	})
}
