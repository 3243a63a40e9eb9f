package charts

import (
	"bytes"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/okian/regboard/internal/domain/registration"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTimeline(t *testing.T) {
	Convey("Given a renderer and a Sri Lanka location", t, func() {
		r := NewRenderer(WithSize(600, 300))
		loc, err := time.LoadLocation("Asia/Colombo")
		So(err, ShouldBeNil)
		start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

		Convey("When rendering several points", func() {
			var buf bytes.Buffer
			err := r.Timeline(&buf, []registration.Point{
				{At: start, Count: 1},
				{At: start.Add(time.Hour), Count: 2},
				{At: start.Add(3 * time.Hour), Count: 3},
			}, loc)

			Convey("Then an SVG with the zone title is written", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldStartWith, "<svg")
				So(buf.String(), ShouldContainSubstring, "Registrations Over Time (Sri Lanka Time)")
			})
		})

		Convey("When rendering a single point", func() {
			var buf bytes.Buffer
			err := r.Timeline(&buf, []registration.Point{{At: start, Count: 1}}, loc)

			Convey("Then the series is padded and still renders", func() {
				So(err, ShouldBeNil)
				So(buf.Len(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When every point shares one instant", func() {
			var buf bytes.Buffer
			err := r.Timeline(&buf, []registration.Point{
				{At: start, Count: 1},
				{At: start, Count: 2},
				{At: start, Count: 3},
			}, loc)

			Convey("Then the range is padded and the line still renders", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldStartWith, "<svg")
			})
		})

		Convey("When there are no points", func() {
			err := r.Timeline(&bytes.Buffer{}, nil, loc)

			Convey("Then ErrNoData is returned", func() {
				So(errors.Is(err, ErrNoData), ShouldBeTrue)
			})
		})
	})
}

func TestTeamSizes(t *testing.T) {
	Convey("Given team size counts", t, func() {
		r := NewRenderer()
		counts := []registration.Count{{Label: "3", Count: 2}, {Label: "4", Count: 1}}

		Convey("When rendering the pie", func() {
			var buf bytes.Buffer
			err := r.TeamSizes(&buf, counts)

			Convey("Then labels carry one-decimal percentages", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "3 (66.7%)")
				So(buf.String(), ShouldContainSubstring, "4 (33.3%)")
			})
		})

		Convey("When there are no counts", func() {
			So(errors.Is(r.TeamSizes(&bytes.Buffer{}, nil), ErrNoData), ShouldBeTrue)
		})
	})

	Convey("Given pie labels", t, func() {
		So(PieLabel("2", 1, 4), ShouldEqual, "2 (25.0%)")
		So(PieLabel("2", 1, 0), ShouldEqual, "2")
	})
}

func TestOrganizations(t *testing.T) {
	Convey("Given organisation counts", t, func() {
		r := NewRenderer()

		Convey("When every organisation has the same count", func() {
			var buf bytes.Buffer
			err := r.Organizations(&buf, []registration.Count{
				{Label: "SLIIT", Count: 1}, {Label: "UoC", Count: 1},
			}, "University")

			Convey("Then the bar chart still renders", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "Teams by University")
				So(buf.String(), ShouldContainSubstring, "SLIIT")
			})
		})

		Convey("When there are no counts", func() {
			So(errors.Is(r.Organizations(&bytes.Buffer{}, nil, "University"), ErrNoData), ShouldBeTrue)
		})
	})

	Convey("Given bar width bounds", t, func() {
		So(barWidth(900, 1), ShouldEqual, 60)
		So(barWidth(900, 200), ShouldEqual, 8)
		So(barWidth(900, 10), ShouldEqual, 41)
	})
}

func TestTimelineTitle(t *testing.T) {
	Convey("Given UTC", t, func() {
		So(TimelineTitle(time.UTC), ShouldEqual, "Registrations Over Time (UTC)")
	})
}

func TestOrganizationsTitle(t *testing.T) {
	Convey("Given a renamed organisation column", t, func() {
		So(OrganizationsTitle("Company"), ShouldEqual, "Teams by Company")
		So(OrganizationsTitle(""), ShouldEqual, "Teams by Organization")

		var buf bytes.Buffer
		So(NewRenderer().Organizations(&buf, []registration.Count{{Label: "Acme", Count: 2}}, "Company"), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "Teams by Company")
		So(buf.String(), ShouldNotContainSubstring, "University")
	})
}
