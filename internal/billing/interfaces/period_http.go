package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nebenkosten/internal/audit"
	"nebenkosten/internal/billing/application"
	billing "nebenkosten/internal/billing/domain"
	"nebenkosten/internal/interval"
)

// PeriodHandler handles billing period APIs.
type PeriodHandler struct {
	service     *application.PeriodService
	auditLogger audit.Logger
}

// NewPeriodHandler constructs a handler.
func NewPeriodHandler(service *application.PeriodService, auditLogger audit.Logger) (*PeriodHandler, error) {
	if service == nil {
		return nil, errors.New("period handler: nil service")
	}
	return &PeriodHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/billing-periods.
func (h *PeriodHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/billing-periods" {
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
	if strings.HasPrefix(path, "/api/billing-periods/") {
		rest := strings.TrimPrefix(path, "/api/billing-periods/")
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

func (h *PeriodHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PropertyUnitID int64  `json:"property_unit_id"`
		StartDate      string `json:"start_date"`
		EndDate        string `json:"end_date"`
		Name           string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	start, err := interval.ParseDate(req.StartDate)
	if err != nil {
		http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := interval.ParseDate(req.EndDate)
	if err != nil {
		http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	period := billing.BillingPeriod{
		PropertyUnitID: req.PropertyUnitID,
		StartDate:      start,
		EndDate:        end,
		Name:           req.Name,
	}
	if err := h.service.Create(r.Context(), &period); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, period)
	audit.Record(r, h.auditLogger, "billing_period.create", "billing_period",
		strconv.FormatInt(period.ID, 10), map[string]any{"name": period.Name})
}

func (h *PeriodHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var unitID int64
	if raw := r.URL.Query().Get("property_unit_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			http.Error(w, "invalid property_unit_id", http.StatusBadRequest)
			return
		}
		unitID = id
	}
	periods, err := h.service.List(r.Context(), unitID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, periods)
}

func (h *PeriodHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	period, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, period)
}

func (h *PeriodHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		Name      *string `json:"name"`
		StartDate *string `json:"start_date"`
		EndDate   *string `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	patch := billing.BillingPeriodUpdate{Name: req.Name}
	if req.StartDate != nil {
		start, err := interval.ParseDate(*req.StartDate)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		patch.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := interval.ParseDate(*req.EndDate)
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		patch.EndDate = &end
	}
	period, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, period)
	audit.Record(r, h.auditLogger, "billing_period.update", "billing_period",
		strconv.FormatInt(id, 10), nil)
}

func (h *PeriodHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "billing_period.delete", "billing_period",
		strconv.FormatInt(id, 10), nil)
}
