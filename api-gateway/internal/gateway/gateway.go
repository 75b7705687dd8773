package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"cloud-kitchen/middleware"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	KitchenSvcURL   string
	AnalyticsSvcURL string
	FrontendDir     string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	config.KitchenSvcURL = strings.TrimRight(config.KitchenSvcURL, "/")
	config.AnalyticsSvcURL = strings.TrimRight(config.AnalyticsSvcURL, "/")
	if config.FrontendDir == "" {
		config.FrontendDir = "./frontend"
	}
	return &Gateway{
		config: config,
		client: client,
	}
}

// Headers that apply to a single connection and must not be forwarded.
var hopHeaders = []string{
	"Connection", "Keep-Alive", "Proxy-Authenticate", "Proxy-Authorization",
	"Te", "Trailer", "Transfer-Encoding", "Upgrade",
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ProxyRequest forwards r to the same path on targetURL, keeping its original
// escaping, and streams the response back. Cookies travel in both directions
// untouched.
func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := targetURL + r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	slog.DebugContext(r.Context(), "proxying request", "method", r.Method, "path", r.URL.Path, "target", targetURL)

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build upstream request", "target", targetURL, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return
	}
	req.ContentLength = r.ContentLength

	for k, v := range r.Header {
		req.Header[k] = v
	}
	for _, h := range hopHeaders {
		req.Header.Del(h)
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		if prior := r.Header.Get("X-Forwarded-For"); prior != "" {
			ip = prior + ", " + ip
		}
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		slog.ErrorContext(r.Context(), "upstream request failed", "target", targetURL, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"message": "Service unavailable"})
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	for _, h := range hopHeaders {
		w.Header().Del(h)
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.WarnContext(r.Context(), "failed to copy upstream response", "path", r.URL.Path, "error", err)
	}
}

// RouteHandler sends analytics and customer reports to analytics-svc, every
// other API call to kitchen-svc and anything else to the frontend.
func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case strings.HasPrefix(path, "/api/admin/analytics/"), strings.HasPrefix(path, "/api/admin/customers/"):
		g.ProxyRequest(w, r, g.config.AnalyticsSvcURL)
	case strings.HasPrefix(path, "/api/"):
		g.ProxyRequest(w, r, g.config.KitchenSvcURL)
	default:
		g.serveFrontend(w, r)
	}
}

// serveFrontend serves static files and falls back to index.html so client
// routes such as /track/{id} load the single-page app.
func (g *Gateway) serveFrontend(w http.ResponseWriter, r *http.Request) {
	clean := filepath.Clean("/" + r.URL.Path)
	if clean != "/" && filepath.Ext(clean) != "" {
		http.ServeFile(w, r, filepath.Join(g.config.FrontendDir, clean))
		return
	}
	http.ServeFile(w, r, filepath.Join(g.config.FrontendDir, "index.html"))
}

func (g *Gateway) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
