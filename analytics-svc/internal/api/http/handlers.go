package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cloud-kitchen/analytics-svc/internal/domain"
	"cloud-kitchen/analytics-svc/internal/service"
	"cloud-kitchen/session"

	"github.com/gorilla/mux"
)

type Handler struct {
	Analytics service.AnalyticsInterface
}

func NewHandler(svc service.AnalyticsInterface) *Handler {
	return &Handler{Analytics: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/admin/analytics/dashboard", session.RequireAdmin(h.getDashboard)).Methods("GET")
	r.HandleFunc("/api/admin/analytics/orders", session.RequireAdmin(h.getOrdersAnalytics)).Methods("GET")
	r.HandleFunc("/api/admin/analytics/customers", session.RequireAdmin(h.getCustomerAnalytics)).Methods("GET")
	r.HandleFunc("/api/admin/customers/export", session.RequireAdmin(h.exportCustomers)).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "analytics-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) getOrdersAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.Analytics.Orders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (h *Handler) getCustomerAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.Analytics.Customers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (h *Handler) exportCustomers(w http.ResponseWriter, r *http.Request) {
	format, err := domain.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.Analytics.ExportCustomers(r.Context(), format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contentType := "application/json"
	if format == domain.ExportCSV {
		contentType = "text/csv; charset=utf-8"
	}
	filename := "customers-" + time.Now().UTC().Format(time.DateOnly) + "." + string(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(body)
}

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

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUnknownFormat) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error(), Field: "format"})
		return
	}
	slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}
