package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nebenkosten/internal/audit"
	"nebenkosten/internal/masterdata/application"
	masterdata "nebenkosten/internal/masterdata/domain"
)

// UnitHandler handles property unit APIs.
type UnitHandler struct {
	service     *application.UnitService
	auditLogger audit.Logger
}

// NewUnitHandler constructs a handler.
func NewUnitHandler(service *application.UnitService, auditLogger audit.Logger) (*UnitHandler, error) {
	if service == nil {
		return nil, errors.New("unit handler: nil service")
	}
	return &UnitHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/property-units.
func (h *UnitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/property-units" {
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
	if strings.HasPrefix(path, "/api/property-units/") {
		rest := strings.TrimPrefix(path, "/api/property-units/")
		id, err := parseID(rest)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
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
	w.WriteHeader(http.StatusNotFound)
}

func (h *UnitHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		LivingAreaM2 float64 `json:"living_area_m2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	unit := masterdata.PropertyUnit{Name: req.Name, LivingAreaM2: req.LivingAreaM2}
	if err := h.service.Create(r.Context(), &unit); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, unit)
	audit.Record(r, h.auditLogger, "property_unit.create", "property_unit",
		strconv.FormatInt(unit.ID, 10), map[string]any{"name": unit.Name})
}

func (h *UnitHandler) handleList(w http.ResponseWriter, r *http.Request) {
	units, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, units)
}

func (h *UnitHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	unit, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

func (h *UnitHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var patch masterdata.PropertyUnitUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	unit, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, unit)
	audit.Record(r, h.auditLogger, "property_unit.update", "property_unit",
		strconv.FormatInt(id, 10), nil)
}

func (h *UnitHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "property_unit.delete", "property_unit",
		strconv.FormatInt(id, 10), nil)
}
