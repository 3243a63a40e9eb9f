package sheets

import "errors"

// Sentinel kinds for spreadsheet errors.
var (
	ErrFetch      = errors.New("sheet fetch failed")
	ErrNewService = errors.New("sheets service init failed")
)
