package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	app "github.com/okian/regboard/internal/app"
	"github.com/okian/regboard/internal/config"
	"github.com/okian/regboard/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type staticSource struct{ rows [][]string }

func (s staticSource) Fetch(context.Context) ([][]string, error) { return s.rows, nil }

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("REGBOARD_ADDR", ":8080")
			_ = os.Setenv("REGBOARD_SPREADSHEET_ID", "sheet-1")
			_ = os.Setenv("REGBOARD_RANGE_NAME", "Form!A:F")
			_ = os.Setenv("REGBOARD_CACHE_BACKEND", "memory")
			defer func() {
				_ = os.Unsetenv("REGBOARD_ADDR")
				_ = os.Unsetenv("REGBOARD_SPREADSHEET_ID")
				_ = os.Unsetenv("REGBOARD_RANGE_NAME")
				_ = os.Unsetenv("REGBOARD_CACHE_BACKEND")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.CacheBackend, convey.ShouldEqual, config.CacheMemory)
			})
		})

		convey.Convey("When the spreadsheet is not configured", func() {
			_ = os.Unsetenv("REGBOARD_SPREADSHEET_ID")

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given the full route set over a static sheet", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithSource(staticSource{rows: [][]string{
			{"Submitted at", "Number of Team Members", "University"},
			{"2024-01-01 10:00:00", "3", "UoM"},
		}}))
		mux := newMux(ctx, svc)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		convey.Convey("Then every surface answers", func() {
			for _, path := range []string{
				"/", "/dashboard", "/charts/timeline.svg", "/api/registrations", "/api/summary",
				"/stats", "/healthz", "/metrics", "/static/dashboard.css", "/openapi.yaml", "/api-docs",
			} {
				convey.So(get(path).Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("And the dashboard links the stylesheet", func() {
			body := get("/").Body.String()
			convey.So(strings.Contains(body, `href="/static/dashboard.css"`), convey.ShouldBeTrue)
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}
