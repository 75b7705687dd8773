package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"cloud-kitchen/kitchen-svc/internal/domain"
	"cloud-kitchen/kitchen-svc/internal/service"
	"cloud-kitchen/session"

	"github.com/gorilla/mux"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type Handler struct {
	Catalog     service.CatalogServiceInterface
	Orders      service.OrderServiceInterface
	Auth        service.AuthServiceInterface
	Promos      service.PromoServiceInterface
	Sessions    *session.Manager
	POSSystemID string
}

func NewHandler(catalog service.CatalogServiceInterface, orders service.OrderServiceInterface,
	auth service.AuthServiceInterface, promos service.PromoServiceInterface, sessions *session.Manager) *Handler {
	return &Handler{
		Catalog:  catalog,
		Orders:   orders,
		Auth:     auth,
		Promos:   promos,
		Sessions: sessions,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/products", h.listProducts).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.getProduct).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/tracking", h.getOrderTracking).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/promos/validate", h.validatePromo).Methods("POST")
	r.HandleFunc("/api/consent", h.recordConsent).Methods("POST")
	r.HandleFunc("/api/integrations/petpooja/init", h.petpoojaInit).Methods("POST")
	r.HandleFunc("/api/integrations/petpooja/status", h.petpoojaStatus).Methods("GET")

	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/auth/me", session.RequireAuth(h.me)).Methods("GET")

	r.HandleFunc("/api/admin/products", session.RequireAdmin(h.createProduct)).Methods("POST")
	r.HandleFunc("/api/admin/products/{id}", session.RequireAdmin(h.updateProduct)).Methods("PUT", "PATCH")
	r.HandleFunc("/api/admin/products/{id}", session.RequireAdmin(h.deleteProduct)).Methods("DELETE")

	r.HandleFunc("/api/admin/orders", session.RequireAdmin(h.listOrders)).Methods("GET")
	r.HandleFunc("/api/admin/orders/export", session.RequireAdmin(h.exportOrders)).Methods("GET")
	r.HandleFunc("/api/admin/orders/{id}", session.RequireAdmin(h.getOrder)).Methods("GET")
	r.HandleFunc("/api/admin/orders/{id}/status", session.RequireAdmin(h.updateOrderStatus)).Methods("PUT")
	r.HandleFunc("/api/admin/orders/{id}/payment", session.RequireAdmin(h.updateOrderPayment)).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "kitchen-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	availableOnly, _ := strconv.ParseBool(r.URL.Query().Get("available"))
	products, err := h.Catalog.List(r.Context(), r.URL.Query().Get("category"), availableOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	product, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	product, err := h.Catalog.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var patch domain.ProductPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	product, err := h.Catalog.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateOrderInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	order, replayed, err := h.Orders.Create(r.Context(), r.Header.Get(IdempotencyKeyHeader), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if replayed {
		w.Header().Set("Idempotent-Replayed", "true")
		writeJSON(w, http.StatusOK, order)
		return
	}
	w.Header().Set("Location", "/api/orders/"+strconv.Itoa(order.ID))
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderTracking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	tracking, err := h.Orders.Tracking(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, tracking)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	png, err := h.Orders.QRCode(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filters, err := parseOrderFilters(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	orders, err := h.Orders.List(r.Context(), filters)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	format, err := domain.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	filters, err := parseOrderFilters(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.Orders.Export(r.Context(), format, filters)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeAttachment(w, format, "orders", body)
}

func writeAttachment(w http.ResponseWriter, format domain.ExportFormat, name string, body []byte) {
	contentType := "application/json"
	if format == domain.ExportCSV {
		contentType = "text/csv; charset=utf-8"
	}
	filename := name + "-" + time.Now().UTC().Format(time.DateOnly) + "." + string(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(body)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type paymentRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

func (h *Handler) updateOrderPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req paymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.Orders.UpdatePayment(r.Context(), id, req.PaymentStatus)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
