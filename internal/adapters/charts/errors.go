package charts

import "errors"

var (
	// ErrNoData is returned when a chart has nothing to plot.
	ErrNoData = errors.New("no data to chart")
	// ErrRender wraps go-chart rendering failures.
	ErrRender = errors.New("failed to render chart")
)
