package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nebenkosten/internal/audit"
	"nebenkosten/internal/billing/application"
	"nebenkosten/internal/observability/metrics"
)

// StatementHandler handles billing statement APIs.
type StatementHandler struct {
	service     *application.StatementService
	auditLogger audit.Logger
}

// NewStatementHandler constructs a handler.
func NewStatementHandler(service *application.StatementService, auditLogger audit.Logger) (*StatementHandler, error) {
	if service == nil {
		return nil, errors.New("statement handler: nil service")
	}
	return &StatementHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/billing-statements.
func (h *StatementHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/billing-statements" {
		switch r.Method {
		case http.MethodPost:
			h.handleGenerate(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	// Alias kept for clients that POST to the explicit generate route.
	if path == "/api/billing-statements/generate" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleGenerate(w, r)
		return
	}
	if strings.HasPrefix(path, "/api/billing-statements/") {
		rest := strings.TrimPrefix(path, "/api/billing-statements/")
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
			case http.MethodDelete:
				h.handleDelete(w, r, id)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
			return
		}
		if len(parts) == 2 && r.Method == http.MethodGet {
			switch parts[1] {
			case "html":
				h.handleHTML(w, r, id)
				return
			case "export.pdf":
				h.handleExportPDF(w, r, id)
				return
			case "export.xlsx":
				h.handleExportXLSX(w, r, id)
				return
			}
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *StatementHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BillingPeriodID int64 `json:"billing_period_id"`
		TenantID        int64 `json:"tenant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	statement, err := h.service.Generate(r.Context(), req.BillingPeriodID, req.TenantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, statement)
	audit.Record(r, h.auditLogger, "billing_statement.generate", "billing_statement",
		strconv.FormatInt(statement.ID, 10), map[string]any{
			"billing_period_id": req.BillingPeriodID,
			"tenant_id":         req.TenantID,
		})
}

func (h *StatementHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var tenantID int64
	if raw := r.URL.Query().Get("tenant_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			http.Error(w, "invalid tenant_id", http.StatusBadRequest)
			return
		}
		tenantID = id
	}
	statements, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, statements)
}

func (h *StatementHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	statement, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, statement)
}

func (h *StatementHandler) handleHTML(w http.ResponseWriter, r *http.Request, id int64) {
	document, err := h.service.Document(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}

func (h *StatementHandler) handleExportPDF(w http.ResponseWriter, r *http.Request, id int64) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStatementExport("pdf", result, time.Since(start))
	}()

	details, err := h.service.Details(r.Context(), id)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := BuildStatementPDF(details)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export pdf error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	audit.Record(r, h.auditLogger, "billing_statement.export", "billing_statement",
		strconv.FormatInt(id, 10), map[string]any{"format": "pdf"})
}

func (h *StatementHandler) handleExportXLSX(w http.ResponseWriter, r *http.Request, id int64) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStatementExport("xlsx", result, time.Since(start))
	}()

	details, err := h.service.Details(r.Context(), id)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := BuildStatementXLSX(details)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export xlsx error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	audit.Record(r, h.auditLogger, "billing_statement.export", "billing_statement",
		strconv.FormatInt(id, 10), map[string]any{"format": "xlsx"})
}

func (h *StatementHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "billing_statement.delete", "billing_statement",
		strconv.FormatInt(id, 10), nil)
}
