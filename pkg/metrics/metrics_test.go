package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry and custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metrics are registered under the custom names", func() {
				So(manager, ShouldNotBeNil)
				manager.sheetFetches.WithLabelValues(FetchSuccess).Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(strings.Join(names, ","), ShouldContainSubstring, "test_unit_sheet_fetches_total")
			})
		})

		Convey("When an option receives an empty value", func() {
			manager := NewManager(WithNamespace(""), WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then the default is kept", func() {
				So(manager.namespace, ShouldEqual, "regboard")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording sheet fetches", func() {
			before := testutil.ToFloat64(globalManager.sheetFetches.WithLabelValues(FetchEmpty))
			RecordSheetFetch(FetchEmpty, 40*time.Millisecond)
			RecordSheetFetch(FetchEmpty, 60*time.Millisecond)

			Convey("Then the counter advances per result", func() {
				So(testutil.ToFloat64(globalManager.sheetFetches.WithLabelValues(FetchEmpty)), ShouldEqual, before+2)
			})
		})

		Convey("When recording a load", func() {
			dropped := testutil.ToFloat64(globalManager.rowsDropped)
			at := time.Unix(1_700_000_000, 0)
			RecordLoad(12, 3, at)
			UpdateSheetRowsFetched(15)

			Convey("Then the gauges reflect the last table", func() {
				So(testutil.ToFloat64(globalManager.registrationsLoaded), ShouldEqual, 12)
				So(testutil.ToFloat64(globalManager.sheetRowsFetched), ShouldEqual, 15)
				So(testutil.ToFloat64(globalManager.lastLoadUnix), ShouldEqual, 1_700_000_000)
				So(testutil.ToFloat64(globalManager.rowsDropped), ShouldEqual, dropped+3)
			})
		})

		Convey("When recording cache, chart and HTTP metrics", func() {
			So(func() {
				RecordCache("memory", CacheHit)
				RecordCache("redis", CacheMiss)
				RecordChartRenderError("timeline")
				RecordHTTPRequest("dashboard", "GET", "200")
				RecordHTTPRequestDuration("dashboard", "GET", "200", 12)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
			_, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
		})
	})
}
