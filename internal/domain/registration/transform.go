package registration

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Options selects the columns and zone Transform works with.
type Options struct {
	// TimestampColumn is the submission-time column. Defaults to "Submitted at".
	TimestampColumn string
	// Location is the display zone. Defaults to UTC.
	Location *time.Location
	// ZoneLabel is used in the derived column name, e.g. "SLT". Defaults to ZoneLabel(Location).
	ZoneLabel string
}

// DefaultTimestampColumn is the column written by the registration form.
const DefaultTimestampColumn = "Submitted at"

var zoneNames = map[string][2]string{
	"Asia/Colombo": {"SLT", "Sri Lanka Time"},
	"UTC":          {"UTC", "UTC"},
}

// ZoneLabel returns the short label used for derived column names.
func ZoneLabel(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	if n, ok := zoneNames[loc.String()]; ok {
		return n[0]
	}
	return loc.String()
}

// ZoneName returns the human name shown in chart titles.
func ZoneName(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	if n, ok := zoneNames[loc.String()]; ok {
		return n[1]
	}
	return loc.String()
}

// Transform builds a Table from raw rows whose first row is the header.
//
// Header names are trimmed and repeated names get ".1", ".2" suffixes so the
// first occurrence keeps the plain name. When the timestamp column is present each value is
// parsed as a UTC instant (explicit offsets are honoured); rows that fail to
// parse are dropped without consuming a sequence number. The remaining rows
// are ordered by instant, ties keeping sheet order, and numbered 1..N.
// Without a timestamp column rows keep sheet order.
//
// Fewer than two rows produce an empty table. The input is not modified.
func Transform(rows [][]string, opts Options) *Table {
	if opts.TimestampColumn == "" {
		opts.TimestampColumn = DefaultTimestampColumn
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.ZoneLabel == "" {
		opts.ZoneLabel = ZoneLabel(opts.Location)
	}

	t := &Table{Location: opts.Location}
	if len(rows) < 2 {
		return t
	}

	header := uniqueHeader(rows[0])
	t.Header = header

	for _, h := range header {
		if h == opts.TimestampColumn {
			t.TimestampColumn = h
			t.LocalColumn = h + " (" + opts.ZoneLabel + ")"
			break
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		values := make(map[string]string, len(header)+2)
		for i, h := range header {
			if i < len(row) {
				values[h] = row[i]
			} else {
				values[h] = ""
			}
		}

		rec := Record{Values: values}
		if t.TimestampColumn != "" {
			at, ok := parseTimestamp(values[t.TimestampColumn])
			if !ok {
				t.Dropped++
				continue
			}
			rec.SubmittedAt = at
		}
		records = append(records, rec)
	}

	if t.TimestampColumn != "" {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].SubmittedAt.Before(records[j].SubmittedAt)
		})
	}

	for i := range records {
		records[i].Sequence = i + 1
		records[i].Values[CumulativeColumn] = strconv.Itoa(i + 1)
		if t.TimestampColumn != "" {
			records[i].SubmittedLocal = records[i].SubmittedAt.In(opts.Location).Format(LocalTimeLayout)
			records[i].Values[t.LocalColumn] = records[i].SubmittedLocal
		}
	}

	if t.LocalColumn != "" {
		t.Header = appendColumn(t.Header, t.LocalColumn)
	}
	t.Header = appendColumn(t.Header, CumulativeColumn)
	t.Records = records
	return t
}

// parseTimestamp accepts the free-text formats spreadsheets and form tools
// emit. Naive values are read as UTC.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	at, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return at.UTC(), true
}

// uniqueHeader trims names and renames repeats to "<name>.<n>", skipping any
// suffix already taken elsewhere in the header.
func uniqueHeader(raw []string) []string {
	header := make([]string, len(raw))
	taken := make(map[string]bool, len(raw))
	for i, h := range raw {
		header[i] = strings.TrimSpace(h)
		taken[header[i]] = true
	}
	seen := make(map[string]int, len(raw))
	for i, h := range header {
		n, dup := seen[h]
		seen[h] = n + 1
		if !dup {
			continue
		}
		name := h + "." + strconv.Itoa(n)
		for taken[name] {
			n++
			name = h + "." + strconv.Itoa(n)
		}
		seen[h] = n + 1
		taken[name] = true
		header[i] = name
	}
	return header
}

func appendColumn(header []string, column string) []string {
	for _, h := range header {
		if h == column {
			return header
		}
	}
	return append(header, column)
}
