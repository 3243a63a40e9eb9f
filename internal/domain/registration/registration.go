// Package registration turns raw spreadsheet rows into ranked registration records.
package registration

import (
	"sort"
	"strings"
	"time"
)

// LocalTimeLayout renders submission times as YYYY-MM-DD hh:mm:ss AM/PM.
const LocalTimeLayout = "2006-01-02 03:04:05 PM"

// CumulativeColumn names the derived running-count column.
const CumulativeColumn = "Cumulative Registrations"

// Record is one registration row. Records are never mutated after Transform.
type Record struct {
	// Values holds the cells keyed by trimmed header name, derived columns included.
	Values map[string]string
	// SubmittedAt is the parsed submission instant in UTC. Zero when the
	// table has no timestamp column.
	SubmittedAt time.Time
	// SubmittedLocal is SubmittedAt rendered in the target zone with LocalTimeLayout.
	SubmittedLocal string
	// Sequence is the 1-based rank by ascending submission time.
	Sequence int
}

// Get returns the cell for column, or "" when absent.
func (r Record) Get(column string) string {
	return r.Values[column]
}

// Table is the transformed result of one load.
type Table struct {
	// Header lists the trimmed source columns followed by the derived ones.
	Header  []string
	Records []Record
	// Dropped counts data rows discarded for an unparseable submission time.
	Dropped int

	// TimestampColumn is set only when the source header carried it.
	TimestampColumn string
	// LocalColumn names the derived local-time column, set with TimestampColumn.
	LocalColumn string
	Location    *time.Location
}

// Empty reports whether the table has no records.
func (t *Table) Empty() bool {
	return t == nil || len(t.Records) == 0
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether column is part of the header.
func (t *Table) HasColumn(column string) bool {
	if t == nil || column == "" {
		return false
	}
	for _, h := range t.Header {
		if h == column {
			return true
		}
	}
	return false
}

// HasTimeline reports whether submission times were parsed.
func (t *Table) HasTimeline() bool {
	return t != nil && t.TimestampColumn != ""
}

// Rows returns the records as string rows aligned with Header.
func (t *Table) Rows() [][]string {
	if t == nil {
		return nil
	}
	out := make([][]string, len(t.Records))
	for i, r := range t.Records {
		row := make([]string, len(t.Header))
		for j, h := range t.Header {
			row[j] = r.Values[h]
		}
		out[i] = row
	}
	return out
}

// Count is one distinct column value and how many records carry it.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ValueCounts groups records by the trimmed value of column. Blank cells are
// skipped. Results are ordered by count descending, then label ascending.
// A missing column yields nil.
func (t *Table) ValueCounts(column string) []Count {
	if !t.HasColumn(column) {
		return nil
	}
	idx := make(map[string]int)
	var counts []Count
	for _, r := range t.Records {
		v := strings.TrimSpace(r.Values[column])
		if v == "" {
			continue
		}
		if i, ok := idx[v]; ok {
			counts[i].Count++
			continue
		}
		idx[v] = len(counts)
		counts = append(counts, Count{Label: v, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// Point is one step of the cumulative timeline.
type Point struct {
	At    time.Time
	Count int
}

// Timeline returns the running count against local submission time, or nil
// when the table carries no timestamps.
func (t *Table) Timeline() []Point {
	if !t.HasTimeline() || t.Empty() {
		return nil
	}
	loc := t.Location
	if loc == nil {
		loc = time.UTC
	}
	points := make([]Point, len(t.Records))
	for i, r := range t.Records {
		points[i] = Point{At: r.SubmittedAt.In(loc), Count: r.Sequence}
	}
	return points
}
