package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	identitymw "fleetrent/internal/identity/middleware"
	"fleetrent/internal/units/service"
	apperrors "fleetrent/pkg/errors"
	httputil "fleetrent/pkg/http"
	"fleetrent/pkg/logger"
	"fleetrent/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UnitHandler struct {
	service service.UnitService
	auth    identitymw.Guard
	log     *logger.Logger
}

func NewUnitHandler(service service.UnitService, auth identitymw.Guard, log *logger.Logger) *UnitHandler {
	return &UnitHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var unit model.Unit
	if err := json.NewDecoder(r.Body).Decode(&unit); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if userID, ok := identitymw.UserIDFromContext(r.Context()); ok {
		unit.CreatedBy = userID
	}

	if err := h.service.Create(r.Context(), &unit); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, unit); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *UnitHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	unit, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, unit); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UnitHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	filters, err := extractUnitFilters(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	units, total, err := h.service.GetAll(r.Context(), filters, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, units, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *UnitHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.UnitUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UnitHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/units", h.auth(h.Create))
	router.GET("/api/v1/units", h.GetAll)
	router.GET("/api/v1/units/id/:id", h.GetByID)
	router.PATCH("/api/v1/units/id/:id", h.auth(h.Update))
	router.DELETE("/api/v1/units/id/:id", h.auth(h.Delete))
}

func extractUnitFilters(r *http.Request) (*model.UnitFilters, error) {
	query := r.URL.Query()

	filters := &model.UnitFilters{
		Status:       query.Get("status"),
		Name:         query.Get("name"),
		Brand:        query.Get("brand"),
		Plate:        query.Get("plate"),
		Transmission: query.Get("transmission"),
	}

	var err error
	if filters.YearMin, err = intParam(query.Get("year_min"), "year_min"); err != nil {
		return nil, err
	}
	if filters.YearMax, err = intParam(query.Get("year_max"), "year_max"); err != nil {
		return nil, err
	}
	if filters.CapacityMin, err = intParam(query.Get("capacity_min"), "capacity_min"); err != nil {
		return nil, err
	}
	if filters.CapacityMax, err = intParam(query.Get("capacity_max"), "capacity_max"); err != nil {
		return nil, err
	}
	if filters.PriceMin, err = floatParam(query.Get("price_min"), "price_min"); err != nil {
		return nil, err
	}
	if filters.PriceMax, err = floatParam(query.Get("price_max"), "price_max"); err != nil {
		return nil, err
	}

	return filters, nil
}

func intParam(value, name string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", name, value))
	}
	return &parsed, nil
}

func floatParam(value, name string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", name, value))
	}
	return &parsed, nil
}
