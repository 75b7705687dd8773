package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cloud-kitchen/kitchen-svc/internal/domain"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		transitionErr *domain.TransitionError
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: validationErr.Message, Field: validationErr.Field})
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPromoNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.As(err, &transitionErr):
		writeMessage(w, http.StatusConflict, transitionErr.Error())
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrRequestInProgress):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads a JSON body. Unknown fields are ignored so clients cannot
// smuggle totals or prices into typed inputs.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("", "request body is required")
		}
		return domain.NewValidationError("", "invalid JSON body: "+err.Error())
	}
	return nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, name+" must be a positive integer")
	}
	return id, nil
}

// parseOrderFilters reads the admin order list query. A bare dateTo date
// covers that whole day.
func parseOrderFilters(r *http.Request) (domain.OrderFilters, error) {
	q := r.URL.Query()
	var f domain.OrderFilters

	if raw := q.Get("status"); raw != "" {
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = status
	}
	if raw := q.Get("paymentStatus"); raw != "" {
		status, err := domain.ParsePaymentStatus(raw)
		if err != nil {
			return f, err
		}
		f.PaymentStatus = status
	}
	f.CustomerName = strings.TrimSpace(q.Get("customerName"))

	if raw := q.Get("dateFrom"); raw != "" {
		t, _, err := parseDate(raw)
		if err != nil {
			return f, domain.NewValidationError("dateFrom", "dateFrom must be RFC 3339 or YYYY-MM-DD")
		}
		f.DateFrom = &t
	}
	if raw := q.Get("dateTo"); raw != "" {
		t, dateOnly, err := parseDate(raw)
		if err != nil {
			return f, domain.NewValidationError("dateTo", "dateTo must be RFC 3339 or YYYY-MM-DD")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Microsecond)
		}
		f.DateTo = &t
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return f, domain.NewValidationError("dateTo", "dateTo must not be before dateFrom")
	}

	var err error
	if f.Limit, err = queryInt(q.Get("limit"), "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = queryInt(q.Get("offset"), "offset"); err != nil {
		return f, err
	}
	return f, nil
}

func parseDate(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	return t, true, err
}

func queryInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(field, field+" must be a non-negative integer")
	}
	return n, nil
}
