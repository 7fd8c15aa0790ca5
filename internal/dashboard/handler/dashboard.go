package handler

import (
	"net/http"

	"fleetrent/internal/dashboard/service"
	identitymw "fleetrent/internal/identity/middleware"
	httputil "fleetrent/pkg/http"
	"fleetrent/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type DashboardHandler struct {
	service service.DashboardService
	auth    identitymw.Guard
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, auth identitymw.Guard, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Stats", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "Stats", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DashboardHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/dashboard/stats", h.auth(h.Stats))
}
