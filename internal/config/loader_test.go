package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/ovation/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()
			_ = os.Setenv("OVATION_AUTH_DISABLED", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.ScoreMin, convey.ShouldEqual, 1)
				convey.So(cfg.ScoreMax, convey.ShouldEqual, 5)
				convey.So(cfg.MaxListLimit, convey.ShouldEqual, 100)
				convey.So(cfg.JournalSize, convey.ShouldEqual, 1024)
				convey.So(cfg.SweepIntervalSeconds, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("OVATION_ADDR", ":8080")
			_ = os.Setenv("OVATION_SCORE_MIN", "0")
			_ = os.Setenv("OVATION_SCORE_MAX", "10")
			_ = os.Setenv("OVATION_MAX_LIST_LIMIT", "50")
			_ = os.Setenv("OVATION_JOURNAL_SIZE", "256")
			_ = os.Setenv("OVATION_SWEEP_INTERVAL_SECONDS", "5")
			_ = os.Setenv("OVATION_AUTH_SECRET", "topsecret")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ScoreMin, convey.ShouldEqual, 0)
				convey.So(cfg.ScoreMax, convey.ShouldEqual, 10)
				convey.So(cfg.MaxListLimit, convey.ShouldEqual, 50)
				convey.So(cfg.JournalSize, convey.ShouldEqual, 256)
				convey.So(cfg.SweepIntervalSeconds, convey.ShouldEqual, 5)
				convey.So(cfg.AuthSecret, convey.ShouldEqual, "topsecret")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars()
			yamlContent := `
addr: ":7070"
score_max: 10
journal_size: 512
auth_disabled: true
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("OVATION_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep defaults for the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.ScoreMax, convey.ShouldEqual, 10)
				convey.So(cfg.JournalSize, convey.ShouldEqual, 512)
				convey.So(cfg.ScoreMin, convey.ShouldEqual, 1)
				convey.So(cfg.MaxListLimit, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			clearConfigEnvVars()
			yamlContent := `
addr: ":7070"
score_max: 10
auth_disabled: true
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("OVATION_CONFIG", tmpFile)
			_ = os.Setenv("OVATION_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ScoreMax, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			clearConfigEnvVars()
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("OVATION_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			clearConfigEnvVars()
			_ = os.Setenv("OVATION_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the score bounds are inverted", func() {
			clearConfigEnvVars()
			_ = os.Setenv("OVATION_AUTH_DISABLED", "true")
			_ = os.Setenv("OVATION_SCORE_MIN", "5")
			_ = os.Setenv("OVATION_SCORE_MAX", "1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "score_min must be below score_max")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When auth is enabled without a secret", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "auth_secret required")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty addr", func() {
			clearConfigEnvVars()
			_ = os.Setenv("OVATION_AUTH_DISABLED", "true")
			_ = os.Setenv("OVATION_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"OVATION_CONFIG",
		"OVATION_LOG_LEVEL",
		"OVATION_ADDR",
		"OVATION_SCORE_MIN",
		"OVATION_SCORE_MAX",
		"OVATION_MAX_LIST_LIMIT",
		"OVATION_JOURNAL_SIZE",
		"OVATION_SWEEP_INTERVAL_SECONDS",
		"OVATION_AUTH_SECRET",
		"OVATION_AUTH_DISABLED",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "ovation-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	_ = f.Close()
	return f.Name()
}
