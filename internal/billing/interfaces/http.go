package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	billing "nebenkosten/internal/billing/domain"
)

func parseID(text string) (int64, error) {
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, billing.ErrOverlap):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, billing.ErrPeriodNotFound),
		errors.Is(err, billing.ErrTenantNotFound),
		errors.Is(err, billing.ErrStatementNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, billing.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
