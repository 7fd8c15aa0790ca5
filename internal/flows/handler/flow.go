package handler

import (
	"encoding/json"
	"net/http"

	"fleetrent/internal/flows"
	"fleetrent/internal/flows/service"
	identitymw "fleetrent/internal/identity/middleware"
	apperrors "fleetrent/pkg/errors"
	httputil "fleetrent/pkg/http"
	"fleetrent/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type FlowHandler struct {
	service *service.FlowService
	auth    identitymw.Guard
	log     *logger.Logger
}

func NewFlowHandler(service *service.FlowService, auth identitymw.Guard, log *logger.Logger) *FlowHandler {
	return &FlowHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type ExecuteFlowRequest struct {
	Flow  string         `json:"flow"`
	Input map[string]any `json:"input"`
}

type ExecuteFlowResponse struct {
	Success bool           `json:"success"`
	Output  map[string]any `json:"output,omitempty"`
}

type ListFlowsResponse struct {
	Flows []string `json:"flows"`
}

func (h *FlowHandler) ExecuteFlow(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req ExecuteFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode flow request", "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ExecuteFlow", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if req.Flow == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("flow name is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ExecuteFlow", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if req.Input == nil {
		req.Input = make(map[string]any)
	}

	if userID, ok := identitymw.UserIDFromContext(r.Context()); ok {
		req.Input["created_by"] = userID
	}

	h.log.Info("executing flow", "flow", req.Flow)

	output, err := h.service.ExecuteFlow(r.Context(), req.Flow, req.Input)
	if err != nil {
		h.log.Error("flow execution failed", "flow", req.Flow, "error", err)
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ExecuteFlow", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, ExecuteFlowResponse{
		Success: true,
		Output:  output,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "ExecuteFlow", "operation", "WriteJSON", "error", err)
	}
}

// BookUnit is the dedicated route for the walk-in booking pipeline. The body
// is the flow input itself, without the execute envelope.
func (h *FlowHandler) BookUnit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log.Error("failed to decode book request", "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "BookUnit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if input == nil {
		input = make(map[string]any)
	}
	if userID, ok := identitymw.UserIDFromContext(r.Context()); ok {
		input["created_by"] = userID
	}

	output, err := h.service.ExecuteFlow(r.Context(), flows.FlowBookUnit, input)
	if err != nil {
		h.log.Error("flow execution failed", "flow", flows.FlowBookUnit, "error", err)
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookUnit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusCreated, ExecuteFlowResponse{
		Success: true,
		Output:  output,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "BookUnit", "operation", "WriteJSON", "error", err)
	}
}

func (h *FlowHandler) ListFlows(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, ListFlowsResponse{
		Flows: h.service.GetAvailableFlows(),
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "ListFlows", "operation", "WriteJSON", "error", err)
	}
}

func (h *FlowHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/flows/execute", h.auth(h.ExecuteFlow))
	router.POST("/api/v1/flows/book", h.auth(h.BookUnit))
	router.GET("/api/v1/flows", h.ListFlows)
}
