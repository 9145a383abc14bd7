package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nebenkosten/internal/audit"
	"nebenkosten/internal/costs/application"
	costs "nebenkosten/internal/costs/domain"
)

// CostTypeHandler handles cost type APIs including the nested allocation
// method association routes.
type CostTypeHandler struct {
	service     *application.CostTypeService
	methods     *application.AllocationMethodService
	auditLogger audit.Logger
}

// NewCostTypeHandler constructs a handler.
func NewCostTypeHandler(service *application.CostTypeService, methods *application.AllocationMethodService, auditLogger audit.Logger) (*CostTypeHandler, error) {
	if service == nil {
		return nil, errors.New("cost type handler: nil service")
	}
	if methods == nil {
		return nil, errors.New("cost type handler: nil allocation method service")
	}
	return &CostTypeHandler{service: service, methods: methods, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/cost-types.
func (h *CostTypeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/cost-types" {
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if strings.HasPrefix(path, "/api/cost-types/") {
		rest := strings.TrimPrefix(path, "/api/cost-types/")
		parts := strings.Split(rest, "/")
		id, err := parseID(parts[0])
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		if len(parts) == 1 {
			switch r.Method {
			case http.MethodGet:
				h.handleGet(w, r, id)
			case http.MethodPut:
				h.handleUpdate(w, r, id)
			case http.MethodDelete:
				h.handleDelete(w, r, id)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
			return
		}
		if parts[1] == "allocation-methods" {
			if len(parts) == 2 {
				switch r.Method {
				case http.MethodGet:
					h.handleListMethods(w, r, id)
				case http.MethodPost:
					h.handleAssignMethod(w, r, id)
				default:
					w.WriteHeader(http.StatusMethodNotAllowed)
				}
				return
			}
			if len(parts) == 3 && r.Method == http.MethodDelete {
				methodID, err := parseID(parts[2])
				if err != nil {
					http.Error(w, "invalid allocation method id", http.StatusBadRequest)
					return
				}
				h.handleRemoveMethod(w, r, id, methodID)
				return
			}
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *CostTypeHandler) handleListMethods(w http.ResponseWriter, r *http.Request, id int64) {
	methods, err := h.methods.ListByCostType(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, methods)
}

func (h *CostTypeHandler) handleAssignMethod(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		AllocationMethodID int64 `json:"allocation_method_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.AllocationMethodID <= 0 {
		http.Error(w, "invalid allocation method id", http.StatusBadRequest)
		return
	}
	if err := h.methods.Assign(r.Context(), id, req.AllocationMethodID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "cost_type.assign_allocation_method", "cost_type",
		strconv.FormatInt(id, 10), map[string]any{"allocation_method_id": req.AllocationMethodID})
}

func (h *CostTypeHandler) handleRemoveMethod(w http.ResponseWriter, r *http.Request, id, methodID int64) {
	if err := h.methods.Remove(r.Context(), id, methodID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "cost_type.remove_allocation_method", "cost_type",
		strconv.FormatInt(id, 10), map[string]any{"allocation_method_id": methodID})
}

func (h *CostTypeHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name               string  `json:"name"`
		Description        *string `json:"description"`
		IsConsumptionBased bool    `json:"is_consumption_based"`
		Unit               *string `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	ct := costs.CostType{
		Name:               req.Name,
		Description:        req.Description,
		IsConsumptionBased: req.IsConsumptionBased,
		Unit:               req.Unit,
	}
	if err := h.service.Create(r.Context(), &ct); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ct)
	audit.Record(r, h.auditLogger, "cost_type.create", "cost_type",
		strconv.FormatInt(ct.ID, 10), map[string]any{"name": ct.Name})
}

func (h *CostTypeHandler) handleList(w http.ResponseWriter, r *http.Request) {
	costTypes, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, costTypes)
}

func (h *CostTypeHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	ct, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ct)
}

func (h *CostTypeHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var patch costs.CostTypeUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	ct, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ct)
	audit.Record(r, h.auditLogger, "cost_type.update", "cost_type",
		strconv.FormatInt(id, 10), nil)
}

func (h *CostTypeHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "cost_type.delete", "cost_type",
		strconv.FormatInt(id, 10), nil)
}

// AllocationMethodHandler handles the allocation method catalog APIs.
type AllocationMethodHandler struct {
	service     *application.AllocationMethodService
	auditLogger audit.Logger
}

// NewAllocationMethodHandler constructs a handler.
func NewAllocationMethodHandler(service *application.AllocationMethodService, auditLogger audit.Logger) (*AllocationMethodHandler, error) {
	if service == nil {
		return nil, errors.New("allocation method handler: nil service")
	}
	return &AllocationMethodHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/allocation-methods.
func (h *AllocationMethodHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/allocation-methods" {
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if strings.HasPrefix(path, "/api/allocation-methods/") {
		rest := strings.TrimPrefix(path, "/api/allocation-methods/")
		id, err := parseID(rest)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *AllocationMethodHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var method costs.AllocationMethod
	if err := json.NewDecoder(r.Body).Decode(&method); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	method.ID = 0
	if err := h.service.Create(r.Context(), &method); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, method)
	audit.Record(r, h.auditLogger, "allocation_method.create", "allocation_method",
		strconv.FormatInt(method.ID, 10), map[string]any{"name": method.Name})
}

func (h *AllocationMethodHandler) handleList(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, methods)
}

func (h *AllocationMethodHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	method, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, method)
}

func (h *AllocationMethodHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "allocation_method.delete", "allocation_method",
		strconv.FormatInt(id, 10), nil)
}
