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

// TenantHandler handles tenant APIs.
type TenantHandler struct {
	service     *application.TenantService
	auditLogger audit.Logger
}

// NewTenantHandler constructs a handler.
func NewTenantHandler(service *application.TenantService, auditLogger audit.Logger) (*TenantHandler, error) {
	if service == nil {
		return nil, errors.New("tenant handler: nil service")
	}
	return &TenantHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/tenants.
func (h *TenantHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/tenants" {
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
	if strings.HasPrefix(path, "/api/tenants/") {
		rest := strings.TrimPrefix(path, "/api/tenants/")
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

func (h *TenantHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		NumberOfPersons int    `json:"number_of_persons"`
		PropertyUnitID  int64  `json:"property_unit_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	tenant := masterdata.Tenant{
		Name:            req.Name,
		NumberOfPersons: req.NumberOfPersons,
		PropertyUnitID:  req.PropertyUnitID,
	}
	if err := h.service.Create(r.Context(), &tenant); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tenant)
	audit.Record(r, h.auditLogger, "tenant.create", "tenant",
		strconv.FormatInt(tenant.ID, 10), map[string]any{"name": tenant.Name})
}

func (h *TenantHandler) handleList(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tenants)
}

func (h *TenantHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	tenant, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tenant)
}

func (h *TenantHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var patch masterdata.TenantUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	tenant, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tenant)
	audit.Record(r, h.auditLogger, "tenant.update", "tenant",
		strconv.FormatInt(id, 10), nil)
}

func (h *TenantHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "tenant.delete", "tenant",
		strconv.FormatInt(id, 10), nil)
}
