package service

import "errors"

var (
	// ErrNoSource is returned when the service was built without a row source.
	ErrNoSource = errors.New("no registration source configured")
	// ErrLoad wraps failures of a pipeline run.
	ErrLoad = errors.New("failed to load registrations")
)
