package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/ovation/internal/adapters/http/api"
	"github.com/okian/ovation/internal/adapters/http/swagger"
	app "github.com/okian/ovation/internal/app"
	"github.com/okian/ovation/internal/config"
	"github.com/okian/ovation/pkg/logger"
	"github.com/okian/ovation/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("OVATION_ADDR", ":8080")
			_ = os.Setenv("OVATION_SCORE_MAX", "10")
			_ = os.Setenv("OVATION_AUTH_DISABLED", "true")
			defer func() {
				_ = os.Unsetenv("OVATION_ADDR")
				_ = os.Unsetenv("OVATION_SCORE_MAX")
				_ = os.Unsetenv("OVATION_AUTH_DISABLED")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ScoreMax, convey.ShouldEqual, 10)
				convey.So(cfg.AuthDisabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithScoreBounds(1, 10),
					app.WithMaxListLimit(50),
					app.WithJournalSize(256),
					app.WithSweepInterval(time.Minute),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc, api.NewHeaderActorExtractor(), 100)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When wiring the full mux", func() {
			ctx := context.Background()
			svc := app.New(app.WithSweepInterval(time.Hour))
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			apiServer := api.NewServer(svc, svc, api.NewHeaderActorExtractor(), 100)
			apiServer.Register(ctx, mux)

			convey.Convey("Then the documented routes respond", func() {
				for _, path := range []string{"/healthz", "/stats", "/swagger", "/swagger/openapi.yaml", "/competitions"} {
					req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, req)
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})
	})
}
