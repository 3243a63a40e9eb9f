// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/regboard/internal/adapters/charts"
	"github.com/okian/regboard/internal/domain/types"
	"github.com/okian/regboard/pkg/logger"
)

// Dependencies required by HTTP handlers. Every call runs the pipeline once.
type Dependencies interface {
	Dashboard(ctx context.Context) types.Dashboard
	Registrations(ctx context.Context) (types.Registrations, error)
	Summary(ctx context.Context) (types.Summary, error)
}

// Server wires HTTP routes for the dashboard and JSON API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	dashboardHandler     *DashboardHandler
	chartHandler         *ChartHandler
	registrationsHandler *RegistrationsHandler
}

// Option configures NewServer.
type Option func(*serverOptions)

type serverOptions struct {
	renderer *charts.Renderer
	logger   logger.Logger
}

// WithRenderer sets the chart renderer.
func WithRenderer(r *charts.Renderer) Option {
	return func(o *serverOptions) {
		if r != nil {
			o.renderer = r
		}
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{renderer: charts.NewRenderer()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("http")
	}
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		dashboardHandler:     NewDashboardHandler(deps, o.renderer, o.logger),
		chartHandler:         NewChartHandler(deps, o.renderer, o.logger),
		registrationsHandler: NewRegistrationsHandler(deps, o.logger),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", get(MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("/stats", get(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/dashboard", get(MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard")))
	mux.HandleFunc("/charts/", get(MetricsMiddleware(s.chartHandler.HandleChart, "charts")))
	mux.HandleFunc("/api/registrations", get(MetricsMiddleware(s.registrationsHandler.HandleRegistrations, "registrations")))
	mux.HandleFunc("/api/summary", get(MetricsMiddleware(s.registrationsHandler.HandleSummary, "summary")))
	// "/" is the catch-all; anything but the exact root is a 404.
	mux.HandleFunc("/", get(MetricsMiddleware(s.dashboardHandler.HandleRoot, "root")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
