package httpapi

import (
	"log/slog"
	"net/http"

	"cloud-kitchen/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type promoRequest struct {
	Code     string           `json:"code"`
	Subtotal *decimal.Decimal `json:"subtotal"`
}

func (h *Handler) validatePromo(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.Promos.Validate(req.Code, req.Subtotal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// recordConsent keeps an audit line of a standalone consent choice. Consent
// given at checkout is stored on the order itself.
func (h *Handler) recordConsent(w http.ResponseWriter, r *http.Request) {
	var consent domain.CookieConsent
	if err := decodeJSON(w, r, &consent); err != nil {
		writeError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "cookie consent recorded",
		"marketing", consent.Marketing,
		"analytics", consent.Analytics,
		"timestamp", consent.Timestamp)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// The POS integration is not implemented; these endpoints only report that.
func (h *Handler) petpoojaInit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotImplemented, map[string]interface{}{
		"success": false,
		"message": "Petpooja integration is not configured",
	})
}

func (h *Handler) petpoojaStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"connected":   false,
		"posSystemId": h.POSSystemID,
	})
}
