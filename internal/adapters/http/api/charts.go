package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/regboard/internal/adapters/charts"
	"github.com/okian/regboard/internal/domain/types"
	"github.com/okian/regboard/pkg/logger"
)

// ChartHandler serves single charts as SVG documents.
type ChartHandler struct {
	deps     Dependencies
	renderer *charts.Renderer
	logger   logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies, r *charts.Renderer, l logger.Logger) *ChartHandler {
	return &ChartHandler{deps: deps, renderer: r, logger: l}
}

// HandleChart handles GET /charts/{timeline,team-sizes,organizations}.svg.
// A chart whose column is absent, or that has nothing to plot, is a 404.
func (h *ChartHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, "/charts/"), ".svg")
	if !ok || !knownChart(name) {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
		return
	}

	ctx := r.Context()
	d := h.deps.Dashboard(ctx)
	if d.Err != nil {
		h.logger.Warn(ctx, "chart load failed",
			logger.String("chart", name),
			logger.String("request_id", RequestIDFromContext(ctx)),
			logger.Error(d.Err),
		)
		writeError(w, http.StatusBadGateway, "load_failed", ErrUpstream)
		return
	}

	var buf bytes.Buffer
	err := h.render(&buf, name, d)
	switch {
	case errors.Is(err, charts.ErrNoData):
		writeError(w, http.StatusNotFound, "no_data", ErrChartUnavailable)
		return
	case err != nil:
		h.logger.Error(ctx, "chart render failed", logger.String("chart", name), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrChartUnavailable)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func knownChart(name string) bool {
	switch name {
	case charts.NameTimeline, charts.NameTeamSizes, charts.NameOrganizations:
		return true
	}
	return false
}

func (h *ChartHandler) render(buf *bytes.Buffer, name string, d types.Dashboard) error {
	switch name {
	case charts.NameTimeline:
		return h.renderer.Timeline(buf, d.Timeline, d.Location)
	case charts.NameTeamSizes:
		if d.TeamSizes == nil {
			return charts.ErrNoData
		}
		return h.renderer.TeamSizes(buf, d.TeamSizes.Counts)
	default:
		if d.Organizations == nil {
			return charts.ErrNoData
		}
		return h.renderer.Organizations(buf, d.Organizations.Counts, d.Organizations.Column)
	}
}
