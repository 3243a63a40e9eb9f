package report

import "io"

// ShowHelp prints usage information for the report tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Registration Report
===================

Reads the configured registration sheet once, ranks registrations by
submission time and writes the table with its derived columns.

Configuration comes from the same REGBOARD_* variables, .env file and
REGBOARD_CONFIG YAML file as the dashboard server.

Usage:
  regreport [options]

Options:
  -format string
        Output format: csv or json (default "csv")
  -output string
        Output file; "-" or empty writes to stdout
  -help
        Show this help message

Examples:
  # CSV to stdout
  regreport

  # JSON snapshot to a file
  regreport -format json -output snapshots/registrations.json
`)
}
