package report

import (
	"fmt"
	"io"
	"strings"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Config holds the options of one report run.
type Config struct {
	Format string    // csv or json
	Output string    // file path; empty or "-" writes to Stdout
	Stdout io.Writer // destination when Output is empty
	Stderr io.Writer // summary line destination
}

func (c *Config) validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = FormatCSV
	}
	switch c.Format {
	case FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrFormat, c.Format)
	}
	if c.Stdout == nil || c.Stderr == nil {
		return fmt.Errorf("%w: stdout and stderr writers are required", ErrConfig)
	}
	return nil
}
