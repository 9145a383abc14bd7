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
	"nebenkosten/internal/interval"
)

// TariffHandler handles tariff APIs.
type TariffHandler struct {
	service     *application.TariffService
	auditLogger audit.Logger
}

// NewTariffHandler constructs a handler.
func NewTariffHandler(service *application.TariffService, auditLogger audit.Logger) (*TariffHandler, error) {
	if service == nil {
		return nil, errors.New("tariff handler: nil service")
	}
	return &TariffHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/tariffs.
func (h *TariffHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/tariffs" {
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
	if strings.HasPrefix(path, "/api/tariffs/") {
		rest := strings.TrimPrefix(path, "/api/tariffs/")
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

func (h *TariffHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CostTypeID   int64   `json:"cost_type_id"`
		PricePerUnit float64 `json:"price_per_unit"`
		ValidFrom    string  `json:"valid_from"`
		ValidTo      *string `json:"valid_to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	validFrom, err := interval.ParseDate(req.ValidFrom)
	if err != nil {
		http.Error(w, "valid_from must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	tariff := costs.Tariff{
		CostTypeID:   req.CostTypeID,
		PricePerUnit: req.PricePerUnit,
		ValidFrom:    validFrom,
	}
	if req.ValidTo != nil {
		validTo, err := interval.ParseDate(*req.ValidTo)
		if err != nil {
			http.Error(w, "valid_to must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		tariff.ValidTo = &validTo
	}
	if err := h.service.Create(r.Context(), &tariff); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tariff)
	audit.Record(r, h.auditLogger, "tariff.create", "tariff",
		strconv.FormatInt(tariff.ID, 10), map[string]any{"cost_type_id": tariff.CostTypeID})
}

func (h *TariffHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var costTypeID int64
	if raw := r.URL.Query().Get("cost_type_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			http.Error(w, "invalid cost_type_id", http.StatusBadRequest)
			return
		}
		costTypeID = id
	}
	tariffs, err := h.service.List(r.Context(), costTypeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tariffs)
}

func (h *TariffHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	tariff, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tariff)
}

func (h *TariffHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		PricePerUnit *float64 `json:"price_per_unit"`
		ValidFrom    *string  `json:"valid_from"`
		ValidTo      *string  `json:"valid_to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	patch := costs.TariffUpdate{PricePerUnit: req.PricePerUnit}
	if req.ValidFrom != nil {
		validFrom, err := interval.ParseDate(*req.ValidFrom)
		if err != nil {
			http.Error(w, "valid_from must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		patch.ValidFrom = &validFrom
	}
	if req.ValidTo != nil {
		validTo, err := interval.ParseDate(*req.ValidTo)
		if err != nil {
			http.Error(w, "valid_to must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		patch.ValidTo = &validTo
	}
	tariff, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tariff)
	audit.Record(r, h.auditLogger, "tariff.update", "tariff",
		strconv.FormatInt(id, 10), nil)
}

func (h *TariffHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "tariff.delete", "tariff",
		strconv.FormatInt(id, 10), nil)
}
