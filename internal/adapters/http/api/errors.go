package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotFound         = errors.New("not found")
	ErrChartUnavailable = errors.New("chart unavailable")
	ErrTemplate         = errors.New("dashboard template failed")
	ErrUpstream         = errors.New("failed to load registrations")
)
