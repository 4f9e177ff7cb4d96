// Package renderproxy is a small standalone service that forwards one
// GET to the Render cloud API using a static API key from the
// environment. It shares nothing with the todo API beyond configuration.
package renderproxy

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/todo-app/apiserver/config"
	"go.uber.org/zap"
)

const upstreamTimeout = 30 * time.Second

// Server wraps the proxy HTTP server.
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

// New constructs the proxy server from config.
func New(cfg config.ProxyConfig) (*Server, error) {
	log, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.RenderAPIKey) == "" {
		log.Warn("RENDER_API_KEY is not set; /services will fail until it is configured")
	}

	router := NewRouter(cfg, log)

	port := cfg.Port
	if port == 0 {
		port = 3000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{httpServer: httpServer, log: log}, nil
}

// Start runs the proxy server.
func (s *Server) Start() error {
	s.log.Info("render api proxy listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown closes the proxy server.
func (s *Server) Shutdown() error {
	_ = s.log.Sync()
	return s.httpServer.Close()
}

// NewRouter builds the proxy routes. Split out from New so tests can
// point the upstream URL at a local server.
func NewRouter(cfg config.ProxyConfig, log *zap.Logger) *chi.Mux {
	handler := &proxyHandler{
		apiKey:      strings.TrimSpace(cfg.RenderAPIKey),
		upstreamURL: cfg.RenderAPIURL,
		client:      &http.Client{Timeout: upstreamTimeout},
		started:     time.Now(),
		log:         log,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer, middleware.Logger)
	router.Get("/", handler.Index)
	router.Get("/services", handler.Services)
	router.Get("/health", handler.Health)
	return router
}

type proxyHandler struct {
	apiKey      string
	upstreamURL string
	client      *http.Client
	started     time.Time
	log         *zap.Logger
}

// IndexResponse describes the service to a browser poking at the root.
type IndexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// ServicesResponse wraps the upstream service list.
type ServicesResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Services []json.RawMessage `json:"services"`
}

// ProxyErrorResponse is the proxy's error payload.
type ProxyErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// HealthResponse is the proxy health payload.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

func (h *proxyHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, IndexResponse{
		Message: "Render API Service",
		Endpoints: map[string]string{
			"services": "/services - Get list of all services in your Render account",
		},
	})
}

func (h *proxyHandler) Services(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" {
		writeJSON(w, http.StatusInternalServerError, ProxyErrorResponse{
			Error:   "Render API key not configured",
			Message: "Please set RENDER_API_KEY in the environment",
		})
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.upstreamURL, nil)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ProxyErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
		})
		return
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Error("render api request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ProxyErrorResponse{
			Error:   "Network Error",
			Message: "Unable to connect to Render API",
		})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ProxyErrorResponse{
			Error:   "Network Error",
			Message: "Unable to read Render API response",
		})
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.log.Error("render api returned error status", zap.Int("status", resp.StatusCode))
		writeJSON(w, resp.StatusCode, ProxyErrorResponse{
			Error:   "Render API Error",
			Message: upstreamErrorMessage(body),
			Status:  resp.StatusCode,
		})
		return
	}

	var services []json.RawMessage
	if err := json.Unmarshal(body, &services); err != nil {
		writeJSON(w, http.StatusInternalServerError, ProxyErrorResponse{
			Error:   "Internal Server Error",
			Message: "Unexpected Render API response shape",
		})
		return
	}

	writeJSON(w, http.StatusOK, ServicesResponse{
		Success:  true,
		Count:    len(services),
		Services: services,
	})
}

func (h *proxyHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.started).Seconds(),
	})
}

func upstreamErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "Render API request failed"
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
