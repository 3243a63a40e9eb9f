// Package sheets reads registration rows from a Google Sheets range.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/okian/regboard/pkg/logger"
	"github.com/okian/regboard/pkg/metrics"
)

// Source yields raw rows, header first. A nil result with a nil error means
// the range holds no data rows.
type Source interface {
	Fetch(ctx context.Context) ([][]string, error)
}

// SheetsSource reads one range through the Sheets v4 API.
type SheetsSource struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	rangeName     string
	timeout       time.Duration
	logger        logger.Logger
}

// Option applies a configuration option to New.
type Option func(*settings)

type settings struct {
	credentials   []byte
	clientOptions []option.ClientOption
	timeout       time.Duration
	logger        logger.Logger
}

// WithCredentialsJSON authenticates with a service-account key document.
func WithCredentialsJSON(b []byte) Option {
	return func(s *settings) {
		s.credentials = b
	}
}

// WithClientOptions appends raw client options, e.g. a test endpoint.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(s *settings) {
		s.clientOptions = append(s.clientOptions, opts...)
	}
}

// WithTimeout bounds every Fetch.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds a read-only Sheets client for one spreadsheet range.
func New(ctx context.Context, spreadsheetID, rangeName string, opts ...Option) (*SheetsSource, error) {
	s := settings{timeout: 15 * time.Second}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logger.Named("sheets")
	}

	clientOpts := make([]option.ClientOption, 0, len(s.clientOptions)+1)
	if len(s.credentials) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, s.credentials, sheetsapi.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("%w: credentials: %w", ErrNewService, err)
		}
		clientOpts = append(clientOpts, option.WithCredentials(creds))
	}
	clientOpts = append(clientOpts, s.clientOptions...)

	svc, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNewService, err)
	}

	return &SheetsSource{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		rangeName:     rangeName,
		timeout:       s.timeout,
		logger:        s.logger,
	}, nil
}

// Fetch performs a single values.get call. There is no retry or paging.
func (s *SheetsSource) Fetch(ctx context.Context) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rangeName).Context(ctx).Do()
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordSheetFetch(metrics.FetchError, elapsed)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrFetch, s.spreadsheetID, s.rangeName, err)
	}

	rows := Stringify(resp.Values)
	if len(rows) < 2 {
		metrics.RecordSheetFetch(metrics.FetchEmpty, elapsed)
		metrics.UpdateSheetRowsFetched(0)
		s.logger.Debug(ctx, "range holds no data rows",
			logger.String("range", s.rangeName),
			logger.Int("rows", len(rows)),
		)
		return nil, nil
	}

	metrics.RecordSheetFetch(metrics.FetchSuccess, elapsed)
	metrics.UpdateSheetRowsFetched(len(rows) - 1)
	s.logger.Debug(ctx, "fetched range",
		logger.String("range", s.rangeName),
		logger.Int("rows", len(rows)-1),
		logger.Duration("elapsed", elapsed),
	)
	return rows, nil
}

// Stringify converts API cell values to strings. Trailing empty cells are
// omitted by the API, so rows may be shorter than the header.
func Stringify(values [][]interface{}) [][]string {
	if len(values) == 0 {
		return nil
	}
	rows := make([][]string, len(values))
	for i, row := range values {
		out := make([]string, len(row))
		for j, cell := range row {
			switch v := cell.(type) {
			case nil:
			case string:
				out[j] = v
			default:
				out[j] = strings.TrimSpace(fmt.Sprint(v))
			}
		}
		rows[i] = out
	}
	return rows
}
