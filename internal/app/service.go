// Package service runs the registration pipeline and builds the views served
// by the HTTP API and the report CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/regboard/internal/adapters/sheets"
	"github.com/okian/regboard/internal/domain/registration"
	"github.com/okian/regboard/internal/domain/types"
	"github.com/okian/regboard/pkg/logger"
	"github.com/okian/regboard/pkg/metrics"
)

// Page text.
const (
	DefaultTitle     = "CodeQuest Registration Tracker"
	MessageNoData    = "No data found or failed to load."
	TotalMetricLabel = "Total Registered Teams"

	defaultTeamSizes  = "Number of Team Members"
	defaultUniversity = "University"
)

// Service implements the dependencies of the HTTP API and the report CLI.
type Service struct {
	mu sync.RWMutex

	source    sheets.Source
	transform registration.Options

	title              string
	teamSizeColumn     string
	organizationColumn string

	logger logger.Logger
	now    func() time.Time

	// State of the most recent run.
	loads       int64
	failures    int64
	lastLoad    time.Time
	lastTotal   int
	lastDropped int
	lastErr     string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the row source.
func WithSource(src sheets.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTransformOptions sets the timestamp column and display zone.
func WithTransformOptions(o registration.Options) Option {
	return func(s *Service) {
		s.transform = o
	}
}

// WithTitle sets the page heading.
func WithTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.title = title
		}
	}
}

// WithColumns sets the columns behind the team-size and organisation charts.
// Empty names keep the defaults.
func WithColumns(teamSize, organization string) Option {
	return func(s *Service) {
		if teamSize != "" {
			s.teamSizeColumn = teamSize
		}
		if organization != "" {
			s.organizationColumn = organization
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		title:              DefaultTitle,
		teamSizeColumn:     defaultTeamSizes,
		organizationColumn: defaultUniversity,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// Title returns the page heading.
func (s *Service) Title() string { return s.title }

// Location returns the display zone.
func (s *Service) Location() *time.Location {
	if s.transform.Location == nil {
		return time.UTC
	}
	return s.transform.Location
}

// Load runs one fetch and transform. On error the returned table is empty,
// never nil.
func (s *Service) Load(ctx context.Context) (*registration.Table, error) {
	if s.source == nil {
		s.recordFailure(ErrNoSource)
		return registration.Transform(nil, s.transform), ErrNoSource
	}

	start := s.now()
	rows, err := s.source.Fetch(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrLoad, err)
		s.recordFailure(err)
		s.logger.Error(ctx, "registration load failed", logger.Error(err))
		return registration.Transform(nil, s.transform), err
	}

	table := registration.Transform(rows, s.transform)
	loadedAt := s.now()
	metrics.RecordLoad(table.Len(), table.Dropped, loadedAt)

	s.mu.Lock()
	s.loads++
	s.lastLoad = loadedAt
	s.lastTotal = table.Len()
	s.lastDropped = table.Dropped
	s.lastErr = ""
	s.mu.Unlock()

	fields := []logger.Field{
		logger.Int("rows", len(rows)),
		logger.Int("records", table.Len()),
		logger.Duration("took", loadedAt.Sub(start)),
	}
	if table.Dropped > 0 {
		s.logger.Warn(ctx, "dropped rows with unparseable submission time",
			append(fields, logger.Int("dropped", table.Dropped))...)
	} else {
		s.logger.Debug(ctx, "registrations loaded", fields...)
	}
	return table, nil
}

func (s *Service) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	s.failures++
	s.lastErr = err.Error()
}

// Registrations loads and flattens the table.
func (s *Service) Registrations(ctx context.Context) (types.Registrations, error) {
	table, err := s.Load(ctx)
	if err != nil {
		return types.Registrations{}, err
	}
	return types.NewRegistrations(table, s.LastLoad()), nil
}

// Summary loads and aggregates the table.
func (s *Service) Summary(ctx context.Context) (types.Summary, error) {
	table, err := s.Load(ctx)
	if err != nil {
		return types.Summary{}, err
	}
	return types.NewSummary(table, s.teamSizeColumn, s.organizationColumn, s.LastLoad()), nil
}

// LastLoad returns when the last successful load finished.
func (s *Service) LastLoad() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastLoad
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"loads":         s.loads,
		"failures":      s.failures,
		"registrations": s.lastTotal,
		"dropped":       s.lastDropped,
		"timezone":      s.Location().String(),
	}
	if !s.lastLoad.IsZero() {
		stats["lastLoad"] = s.lastLoad.UTC().Format(time.RFC3339)
	}
	if s.lastErr != "" {
		stats["lastError"] = s.lastErr
	}
	return stats
}
