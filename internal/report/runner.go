// Package report runs the registration pipeline once and writes a snapshot.
package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/regboard/internal/domain/types"
	"github.com/okian/regboard/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0640
)

// Loader runs one pipeline load.
type Loader interface {
	Registrations(ctx context.Context) (types.Registrations, error)
}

// Run loads the registrations once and writes them in cfg.Format.
func Run(ctx context.Context, cfg *Config, loader Loader) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	start := time.Now()

	regs, err := loader.Registrations(ctx)
	if err != nil {
		return err
	}

	dest := "stdout"
	if cfg.Output == "" || cfg.Output == "-" {
		err = write(cfg.Stdout, cfg.Format, regs)
	} else {
		dest = cfg.Output
		err = writeFile(cfg.Output, cfg.Format, regs)
	}
	if err != nil {
		return err
	}

	logger.Get().Info(ctx, "report written",
		logger.String("format", cfg.Format),
		logger.String("output", dest),
		logger.Int("registrations", regs.Total),
		logger.Int("dropped", regs.Dropped),
		logger.Duration("took", time.Since(start)),
	)
	_, _ = fmt.Fprintf(cfg.Stderr, "Wrote %d registrations (%d dropped) to %s\n", regs.Total, regs.Dropped, dest)
	return nil
}

// openFile creates the report file. Replaced in tests.
var openFile = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
}

func writeFile(path, format string, regs types.Registrations) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("%w: create directory: %w", ErrWrite, err)
		}
	}
	file, err := openFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	// A failed close can leave the file truncated.
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", ErrWrite, path, cerr)
		}
	}()
	return write(file, format, regs)
}

func write(w io.Writer, format string, regs types.Registrations) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(regs)
	default:
		err = writeCSV(w, regs)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// writeCSV writes the header followed by one line per record. An empty
// table with no header writes nothing.
func writeCSV(w io.Writer, regs types.Registrations) error {
	cw := csv.NewWriter(w)
	if len(regs.Header) > 0 {
		if err := cw.Write(regs.Header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(regs.Rows); err != nil {
		return err
	}
	return cw.Error()
}
