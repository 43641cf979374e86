// Package api exposes the REST surface of taskbridge. Every endpoint
// validates its input and delegates to the webhook gateway; no business
// logic lives here and no state is held between requests.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kvisle/taskbridge/backend/gateway"
)

type Server struct {
	mux    *http.ServeMux
	server *http.Server
	port   int
}

type ServerOptions struct {
	Gateway  gateway.Client
	Port     int
	Version  string
	Registry *prometheus.Registry
}

func NewServer(opts ServerOptions) *Server {
	apiHandler := NewHandler(HandlerOptions{
		Gateway: opts.Gateway,
		Version: opts.Version,
	})

	var handler http.Handler = apiHandler
	mux := http.NewServeMux()

	if opts.Registry != nil {
		requests := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskbridge",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API requests by method and status code.",
		}, []string{"method", "code"})
		opts.Registry.MustRegister(requests)

		handler = promhttp.InstrumentHandlerCounter(requests, apiHandler)
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	mux.Handle("/", handler)

	return &Server{
		mux:  mux,
		port: opts.Port,
	}
}

func (s *Server) ListenAndServe() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.mux,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

type HandlerOptions struct {
	Gateway gateway.Client
	Version string
}

type Handler struct {
	gateway gateway.Client
	version string
	mux     *http.ServeMux
}

func NewHandler(opts HandlerOptions) *Handler {
	handler := &Handler{
		gateway: opts.Gateway,
		version: opts.Version,
		mux:     http.NewServeMux(),
	}

	handler.mux.HandleFunc("GET /{$}", handler.root)
	handler.mux.HandleFunc("GET /health", handler.health)
	handler.mux.HandleFunc("GET /api/v1/tasks", handler.listTasks)
	handler.mux.HandleFunc("POST /api/v1/tasks", handler.createTask)
	handler.mux.HandleFunc("PUT /api/v1/tasks/{name}", handler.updateTask)
	handler.mux.HandleFunc("DELETE /api/v1/tasks/{name}", handler.deleteTask)
	handler.mux.HandleFunc("POST /api/v1/message", handler.sendMessage)
	handler.mux.HandleFunc("GET /api/v1/stats", handler.stats)

	return handler
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}
