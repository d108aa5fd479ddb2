package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gitlab.com/yelinaung/finance-tracker/internal/auth"
	"gitlab.com/yelinaung/finance-tracker/internal/logger"
	"gitlab.com/yelinaung/finance-tracker/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps domain errors to HTTP statuses. Anything unmapped is a
// server fault: logged and reported as 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeErrorMessage(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, auth.ErrWeakPassword):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPermission):
		writeErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrReservedName),
		errors.Is(err, service.ErrDuplicateBudget):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	default:
		logger.Log.Error().Err(err).Msg("Request failed")
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON parses a request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &service.ValidationError{Field: "body", Reason: "malformed JSON"}
	}
	return nil
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &service.ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD date.
func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &service.ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD format"}
	}
	return d, nil
}

// monthYearParams reads optional month/year query parameters, defaulting
// to the current month.
func monthYearParams(r *http.Request, now time.Time) (int, time.Month, error) {
	year := now.Year()
	month := now.Month()

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1 {
			return 0, 0, &service.ValidationError{Field: "year", Reason: "must be a positive integer"}
		}
		year = y
	}
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, &service.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
		}
		month = time.Month(m)
	}

	return year, month, nil
}

// monthTitle renders a human label like "November 2025".
func monthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}
