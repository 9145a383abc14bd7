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

// FixedCostHandler handles fixed cost APIs.
type FixedCostHandler struct {
	service     *application.FixedCostService
	auditLogger audit.Logger
}

// NewFixedCostHandler constructs a handler.
func NewFixedCostHandler(service *application.FixedCostService, auditLogger audit.Logger) (*FixedCostHandler, error) {
	if service == nil {
		return nil, errors.New("fixed cost handler: nil service")
	}
	return &FixedCostHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/fixed-costs.
func (h *FixedCostHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/fixed-costs" {
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
	if strings.HasPrefix(path, "/api/fixed-costs/") {
		rest := strings.TrimPrefix(path, "/api/fixed-costs/")
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

func (h *FixedCostHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CostTypeID  int64   `json:"cost_type_id"`
		Amount      float64 `json:"amount"`
		PeriodStart string  `json:"billing_period_start"`
		PeriodEnd   string  `json:"billing_period_end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	start, err := interval.ParseDate(req.PeriodStart)
	if err != nil {
		http.Error(w, "billing_period_start must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := interval.ParseDate(req.PeriodEnd)
	if err != nil {
		http.Error(w, "billing_period_end must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	fc := costs.FixedCost{
		CostTypeID:  req.CostTypeID,
		Amount:      req.Amount,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	if err := h.service.Create(r.Context(), &fc); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, fc)
	audit.Record(r, h.auditLogger, "fixed_cost.create", "fixed_cost",
		strconv.FormatInt(fc.ID, 10), map[string]any{"cost_type_id": fc.CostTypeID})
}

func (h *FixedCostHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var costTypeID int64
	if raw := r.URL.Query().Get("cost_type_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			http.Error(w, "invalid cost_type_id", http.StatusBadRequest)
			return
		}
		costTypeID = id
	}
	fixedCosts, err := h.service.List(r.Context(), costTypeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fixedCosts)
}

func (h *FixedCostHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	fc, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fc)
}

func (h *FixedCostHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		Amount      *float64 `json:"amount"`
		PeriodStart *string  `json:"billing_period_start"`
		PeriodEnd   *string  `json:"billing_period_end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	patch := costs.FixedCostUpdate{Amount: req.Amount}
	if req.PeriodStart != nil {
		start, err := interval.ParseDate(*req.PeriodStart)
		if err != nil {
			http.Error(w, "billing_period_start must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		patch.PeriodStart = &start
	}
	if req.PeriodEnd != nil {
		end, err := interval.ParseDate(*req.PeriodEnd)
		if err != nil {
			http.Error(w, "billing_period_end must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		patch.PeriodEnd = &end
	}
	fc, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fc)
	audit.Record(r, h.auditLogger, "fixed_cost.update", "fixed_cost",
		strconv.FormatInt(id, 10), nil)
}

func (h *FixedCostHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "fixed_cost.delete", "fixed_cost",
		strconv.FormatInt(id, 10), nil)
}
