package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ChartRenderer produces the chart for one page load.
type ChartRenderer interface {
	Run(ctx context.Context) (*render.Chart, error)
	Layout() render.Layout
}

// Server exposes the heat map page plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, charts ChartRenderer, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: mux,
			// The page handler waits on the remote fetch, which has no
			// deadline of its own by default.
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", handlePage(charts))
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handlePage runs one render per request. The pipeline has already logged a
// failed render, so the handler only serves the empty surface with 502.
func handlePage(charts ChartRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		layout := charts.Layout()
		chart, err := charts.Run(r.Context())
		if err != nil {
			templ.Handler(render.Page(nil, layout), templ.WithStatus(http.StatusBadGateway)).ServeHTTP(w, r)
			return
		}
		templ.Handler(render.Page(chart, layout)).ServeHTTP(w, r)
	}
}
