// Package types contains the read shapes shared by the HTTP API and the report CLI.
package types

import (
	"time"

	"github.com/okian/regboard/internal/domain/registration"
)

// Registrations is the tabular view of one load.
type Registrations struct {
	Header   []string   `json:"header"`
	Rows     [][]string `json:"rows"`
	Total    int        `json:"total"`
	Dropped  int        `json:"dropped"`
	LoadedAt time.Time  `json:"loaded_at"`
}

// Summary carries the scalar metrics and chart inputs of one load.
type Summary struct {
	Total           int                  `json:"total"`
	Dropped         int                  `json:"dropped"`
	FirstSubmission string               `json:"first_submission,omitempty"`
	LastSubmission  string               `json:"last_submission,omitempty"`
	TeamSizes       []registration.Count `json:"team_sizes,omitempty"`
	Organizations   []registration.Count `json:"organizations,omitempty"`
	LoadedAt        time.Time            `json:"loaded_at"`
}

// NewRegistrations flattens a table.
func NewRegistrations(t *registration.Table, loadedAt time.Time) Registrations {
	r := Registrations{Header: []string{}, Rows: [][]string{}, LoadedAt: loadedAt}
	if t == nil {
		return r
	}
	if t.Header != nil {
		r.Header = t.Header
	}
	if rows := t.Rows(); rows != nil {
		r.Rows = rows
	}
	r.Total = t.Len()
	r.Dropped = t.Dropped
	return r
}

// NewSummary aggregates a table using the given chart columns.
func NewSummary(t *registration.Table, teamSizeColumn, organizationColumn string, loadedAt time.Time) Summary {
	s := Summary{LoadedAt: loadedAt}
	if t == nil {
		return s
	}
	s.Total = t.Len()
	s.Dropped = t.Dropped
	s.TeamSizes = t.ValueCounts(teamSizeColumn)
	s.Organizations = t.ValueCounts(organizationColumn)
	if t.HasTimeline() && !t.Empty() {
		s.FirstSubmission = t.Records[0].SubmittedLocal
		s.LastSubmission = t.Records[t.Len()-1].SubmittedLocal
	}
	return s
}

// Banner levels.
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
)

// Banner is the status line shown above the dashboard.
type Banner struct {
	Level   string
	Message string
}

// Section is one optional count chart.
type Section struct {
	Heading string
	// Column is the sheet column the counts were taken from.
	Column string
	Counts []registration.Count
}

// Dashboard is the view model of one page load.
type Dashboard struct {
	Title  string
	Banner Banner
	// TotalLabel and Total are set only when records were loaded.
	TotalLabel string
	Total      int
	Dropped    int

	// Timeline is nil when there are no records or no timestamp column.
	Timeline        []registration.Point
	TimelineHeading string
	Location        *time.Location

	// TeamSizes and Organizations are nil when their column is absent.
	TeamSizes     *Section
	Organizations *Section

	LoadedAt time.Time
	// Err holds the load failure, if any. The page still renders.
	Err error
}

// Empty reports whether the page only carries the warning banner.
func (d Dashboard) Empty() bool { return d.Total == 0 }
