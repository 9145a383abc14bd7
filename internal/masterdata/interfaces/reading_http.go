package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nebenkosten/internal/audit"
	"nebenkosten/internal/interval"
	"nebenkosten/internal/masterdata/application"
	masterdata "nebenkosten/internal/masterdata/domain"
)

// ReadingHandler handles the flat meter reading routes.
type ReadingHandler struct {
	service     *application.ReadingService
	auditLogger audit.Logger
}

// NewReadingHandler constructs a handler.
func NewReadingHandler(service *application.ReadingService, auditLogger audit.Logger) (*ReadingHandler, error) {
	if service == nil {
		return nil, errors.New("reading handler: nil service")
	}
	return &ReadingHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/meter-readings.
func (h *ReadingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if strings.HasPrefix(path, "/api/meter-readings/") {
		rest := strings.TrimPrefix(path, "/api/meter-readings/")
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

func (h *ReadingHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	reading, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reading)
}

func (h *ReadingHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		ReadingDate *string  `json:"reading_date"`
		Value       *float64 `json:"value"`
		Notes       *string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	patch := masterdata.ReadingUpdate{Value: req.Value, Notes: req.Notes}
	if req.ReadingDate != nil {
		date, err := interval.ParseDate(*req.ReadingDate)
		if err != nil {
			http.Error(w, "reading_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		patch.ReadingDate = &date
	}
	reading, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reading)
	audit.Record(r, h.auditLogger, "meter_reading.update", "meter_reading",
		strconv.FormatInt(id, 10), nil)
}

func (h *ReadingHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "meter_reading.delete", "meter_reading",
		strconv.FormatInt(id, 10), nil)
}
