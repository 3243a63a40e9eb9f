package api

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"io"
	"net/http"

	"github.com/okian/regboard/internal/adapters/charts"
	"github.com/okian/regboard/internal/domain/types"
	"github.com/okian/regboard/pkg/logger"
)

// DashboardHandler renders the HTML dashboard.
type DashboardHandler struct {
	deps     Dependencies
	renderer *charts.Renderer
	logger   logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps Dependencies, r *charts.Renderer, l logger.Logger) *DashboardHandler {
	return &DashboardHandler{deps: deps, renderer: r, logger: l}
}

type dashboardPage struct {
	types.Dashboard
	Charts []chartBlock
}

type chartBlock struct {
	ID      string
	Icon    string
	Heading string
	// Src is an SVG data URI; empty when rendering failed.
	Src template.URL
}

// HandleRoot serves the dashboard at exactly "/".
func (h *DashboardHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
		return
	}
	h.HandleDashboard(w, r)
}

// HandleDashboard handles GET /dashboard. The page runs one load and inlines
// every chart, so a fetch failure still yields a 200 with the warning banner.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := h.deps.Dashboard(ctx)
	if d.Err != nil {
		h.logger.Warn(ctx, "dashboard load failed",
			logger.String("request_id", RequestIDFromContext(ctx)),
			logger.Error(d.Err),
		)
	}

	page := dashboardPage{Dashboard: d}
	if !d.Empty() {
		page.Charts = h.blocks(r, d)
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.logger.Error(ctx, "dashboard template failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrTemplate)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *DashboardHandler) blocks(r *http.Request, d types.Dashboard) []chartBlock {
	var out []chartBlock
	if d.Timeline != nil {
		out = append(out, h.block(r, charts.NameTimeline, "📅", d.TimelineHeading, func(w io.Writer) error {
			return h.renderer.Timeline(w, d.Timeline, d.Location)
		}))
	}
	if d.TeamSizes != nil {
		out = append(out, h.block(r, charts.NameTeamSizes, "👥", d.TeamSizes.Heading, func(w io.Writer) error {
			return h.renderer.TeamSizes(w, d.TeamSizes.Counts)
		}))
	}
	if d.Organizations != nil {
		out = append(out, h.block(r, charts.NameOrganizations, "🏫", d.Organizations.Heading, func(w io.Writer) error {
			return h.renderer.Organizations(w, d.Organizations.Counts, d.Organizations.Column)
		}))
	}
	return out
}

func (h *DashboardHandler) block(r *http.Request, id, icon, heading string, render func(io.Writer) error) chartBlock {
	b := chartBlock{ID: id, Icon: icon, Heading: heading}
	var svg bytes.Buffer
	if err := render(&svg); err != nil {
		h.logger.Warn(r.Context(), "chart skipped",
			logger.String("chart", id),
			logger.Error(err),
		)
		return b
	}
	b.Src = template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg.Bytes())) //nolint:gosec // generated locally
	return b
}
