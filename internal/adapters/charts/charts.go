// Package charts renders the dashboard charts as SVG with go-chart.
package charts

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/regboard/internal/domain/registration"
	"github.com/okian/regboard/pkg/metrics"
)

// Chart names used in metrics and routes.
const (
	NameTimeline      = "timeline"
	NameTeamSizes     = "team-sizes"
	NameOrganizations = "organizations"
)

// Default dimensions in pixels.
const (
	defaultWidth  = 900
	defaultHeight = 420
)

// axisTimeLayout labels timeline ticks.
const axisTimeLayout = "Jan 02 15:04"

var (
	lineColor = drawing.ColorFromHex("1f77b4")
	barColor  = chart.ColorGreen
)

// Renderer draws charts at a fixed size.
type Renderer struct {
	width  int
	height int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize overrides the default chart size. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TimelineTitle returns the heading used for the cumulative chart.
func TimelineTitle(loc *time.Location) string {
	return "Registrations Over Time (" + registration.ZoneName(loc) + ")"
}

// Timeline writes the cumulative registrations line chart. Tick labels are
// rendered in loc.
func (r *Renderer) Timeline(w io.Writer, points []registration.Point, loc *time.Location) error {
	if len(points) == 0 {
		return ErrNoData
	}
	if loc == nil {
		loc = time.UTC
	}

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.At
		ys[i] = float64(p.Count)
	}
	// Points are sorted, so equal ends mean a zero-width x range, which
	// go-chart refuses to draw.
	if last := len(xs) - 1; xs[0].Equal(xs[last]) {
		xs = append(xs, xs[last].Add(time.Minute))
		ys = append(ys, ys[last])
	}

	maxY := ys[len(ys)-1]
	ch := chart.Chart{
		Title:      TimelineTitle(loc),
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: localTimeFormatter(loc),
		},
		YAxis: chart.YAxis{
			Name:           "Cumulative Registrations",
			Range:          &chart.ContinuousRange{Min: 0, Max: maxY},
			ValueFormatter: chart.IntValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Cumulative Registrations",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    3,
				},
			},
		},
	}
	return render(NameTimeline, func() error { return ch.Render(chart.SVG, w) })
}

// TeamSizes writes the team-size distribution pie chart.
func (r *Renderer) TeamSizes(w io.Writer, counts []registration.Count) error {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		values = append(values, chart.Value{
			Value: float64(c.Count),
			Label: PieLabel(c.Label, c.Count, total),
		})
	}
	pie := chart.PieChart{
		Title:  "Team Sizes",
		Width:  r.height,
		Height: r.height,
		Values: values,
	}
	return render(NameTeamSizes, func() error { return pie.Render(chart.SVG, w) })
}

// PieLabel formats a slice label with its share of total to one decimal.
func PieLabel(label string, count, total int) string {
	if total <= 0 {
		return label
	}
	return fmt.Sprintf("%s (%.1f%%)", label, float64(count)*100/float64(total))
}

// OrganizationsTitle returns the bar chart heading for the organisation column.
func OrganizationsTitle(column string) string {
	if column == "" {
		column = "Organization"
	}
	return "Teams by " + column
}

// Organizations writes the participation bar chart for column.
func (r *Renderer) Organizations(w io.Writer, counts []registration.Count, column string) error {
	if len(counts) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(counts))
	maxY := 0
	for i, c := range counts {
		bars[i] = chart.Value{
			Value: float64(c.Count),
			Label: c.Label,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
		if c.Count > maxY {
			maxY = c.Count
		}
	}
	bc := chart.BarChart{
		Title:      OrganizationsTitle(column),
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth(r.width, len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 120}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:           "Team Count",
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(maxY)},
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}
	return render(NameOrganizations, func() error { return bc.Render(chart.SVG, w) })
}

func barWidth(width, n int) int {
	bw := (width - 80) / (2 * n)
	switch {
	case bw < 8:
		return 8
	case bw > 60:
		return 60
	default:
		return bw
	}
}

func localTimeFormatter(loc *time.Location) chart.ValueFormatter {
	return func(v interface{}) string {
		switch t := v.(type) {
		case time.Time:
			return t.In(loc).Format(axisTimeLayout)
		case float64:
			return chart.TimeFromFloat64(t).In(loc).Format(axisTimeLayout)
		case int64:
			return time.Unix(0, t).In(loc).Format(axisTimeLayout)
		default:
			return fmt.Sprint(v)
		}
	}
}

func render(name string, fn func() error) error {
	if err := fn(); err != nil {
		metrics.RecordChartRenderError(name)
		return fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	return nil
}
