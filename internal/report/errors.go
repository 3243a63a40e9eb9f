package report

import "errors"

var (
	// ErrFormat is returned for an unsupported output format.
	ErrFormat = errors.New("unsupported report format")
	// ErrConfig is returned for an incomplete run configuration.
	ErrConfig = errors.New("invalid report config")
	// ErrWrite wraps output failures.
	ErrWrite = errors.New("failed to write report")
)
