package service

import (
	"context"
	"fmt"

	"github.com/okian/regboard/internal/domain/registration"
	"github.com/okian/regboard/internal/domain/types"
)

// Dashboard runs the pipeline once and builds the page. A failed load yields
// the warning banner rather than an error.
func (s *Service) Dashboard(ctx context.Context) types.Dashboard {
	table, err := s.Load(ctx)
	d := types.Dashboard{
		Title:    s.title,
		Location: s.Location(),
		LoadedAt: s.LastLoad(),
		Err:      err,
	}
	if err != nil || table.Empty() {
		d.Banner = types.Banner{Level: types.LevelWarning, Message: MessageNoData}
		return d
	}

	d.Banner = types.Banner{Level: types.LevelSuccess, Message: fmt.Sprintf("Loaded %d registrations.", table.Len())}
	d.TotalLabel = TotalMetricLabel
	d.Total = table.Len()
	d.Dropped = table.Dropped

	if table.HasTimeline() {
		d.Timeline = table.Timeline()
		d.TimelineHeading = "Registration Timeline (" + registration.ZoneLabel(d.Location) + ")"
	}
	if table.HasColumn(s.teamSizeColumn) {
		d.TeamSizes = &types.Section{
			Heading: "Team Size Distribution",
			Column:  s.teamSizeColumn,
			Counts:  table.ValueCounts(s.teamSizeColumn),
		}
	}
	if table.HasColumn(s.organizationColumn) {
		d.Organizations = &types.Section{
			Heading: s.organizationColumn + " Participation",
			Column:  s.organizationColumn,
			Counts:  table.ValueCounts(s.organizationColumn),
		}
	}
	return d
}
