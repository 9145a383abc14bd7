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

// MeterHandler handles meter APIs including the nested reading routes.
type MeterHandler struct {
	meters      *application.MeterService
	readings    *application.ReadingService
	auditLogger audit.Logger
}

// NewMeterHandler constructs a handler.
func NewMeterHandler(meters *application.MeterService, readings *application.ReadingService, auditLogger audit.Logger) (*MeterHandler, error) {
	if meters == nil {
		return nil, errors.New("meter handler: nil meter service")
	}
	if readings == nil {
		return nil, errors.New("meter handler: nil reading service")
	}
	return &MeterHandler{meters: meters, readings: readings, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/meters.
func (h *MeterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/meters" {
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
	if strings.HasPrefix(path, "/api/meters/") {
		rest := strings.TrimPrefix(path, "/api/meters/")
		parts := strings.Split(rest, "/")
		id, err := parseID(parts[0])
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		switch {
		case len(parts) == 1:
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
		case len(parts) == 2 && parts[1] == "readings":
			switch r.Method {
			case http.MethodPost:
				h.handleCreateReading(w, r, id)
			case http.MethodGet:
				h.handleListReadings(w, r, id)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
			return
		case len(parts) == 3 && parts[1] == "readings" && parts[2] == "export.xlsx":
			if r.Method == http.MethodGet {
				h.handleExportReadings(w, r, id)
				return
			}
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *MeterHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		MeterType      string `json:"meter_type"`
		Unit           string `json:"unit"`
		Assignment     string `json:"assignment_type"`
		PropertyUnitID *int64 `json:"property_unit_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	assignment, err := masterdata.ParseAssignment(req.Assignment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	meter := masterdata.Meter{
		Name:           req.Name,
		MeterType:      req.MeterType,
		Unit:           req.Unit,
		Assignment:     assignment,
		PropertyUnitID: req.PropertyUnitID,
	}
	if err := h.meters.Create(r.Context(), &meter); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, meter)
	audit.Record(r, h.auditLogger, "meter.create", "meter",
		strconv.FormatInt(meter.ID, 10), map[string]any{"name": meter.Name})
}

func (h *MeterHandler) handleList(w http.ResponseWriter, r *http.Request) {
	meters, err := h.meters.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, meters)
}

func (h *MeterHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	meter, err := h.meters.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, meter)
}

func (h *MeterHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var patch masterdata.MeterUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	meter, err := h.meters.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, meter)
	audit.Record(r, h.auditLogger, "meter.update", "meter",
		strconv.FormatInt(id, 10), nil)
}

func (h *MeterHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.meters.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	audit.Record(r, h.auditLogger, "meter.delete", "meter",
		strconv.FormatInt(id, 10), nil)
}

func (h *MeterHandler) handleCreateReading(w http.ResponseWriter, r *http.Request, meterID int64) {
	var req struct {
		ReadingDate string  `json:"reading_date"`
		Value       float64 `json:"value"`
		Notes       *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	date, err := interval.ParseDate(req.ReadingDate)
	if err != nil {
		http.Error(w, "reading_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	reading := masterdata.MeterReading{
		MeterID:     meterID,
		ReadingDate: date,
		Value:       req.Value,
		Notes:       req.Notes,
	}
	if err := h.readings.Create(r.Context(), &reading); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reading)
	audit.Record(r, h.auditLogger, "meter_reading.create", "meter_reading",
		strconv.FormatInt(reading.ID, 10), map[string]any{"meter_id": meterID})
}

func (h *MeterHandler) handleListReadings(w http.ResponseWriter, r *http.Request, meterID int64) {
	readings, err := h.readings.ListByMeter(r.Context(), meterID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, readings)
}

func (h *MeterHandler) handleExportReadings(w http.ResponseWriter, r *http.Request, meterID int64) {
	meter, err := h.meters.Get(r.Context(), meterID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	readings, err := h.readings.ListByMeter(r.Context(), meterID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	data, err := BuildReadingsXLSX(meter, readings)
	if err != nil {
		http.Error(w, "export xlsx error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
