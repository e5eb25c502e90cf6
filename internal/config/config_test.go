package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ruanlop/placarlive/internal/config"
)

func TestDefaults(t *testing.T) {
	Convey("Given no configuration sources", t, func() {
		Convey("When the config loads", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.StorePath, ShouldEqual, "placarlive-state.json")
				So(cfg.IdleIntervalSec, ShouldEqual, 60)
				So(cfg.PreMatchIntervalSec, ShouldEqual, 15)
				So(cfg.LiveIntervalSec, ShouldEqual, 5)
				So(cfg.PreMatchWindowMin, ShouldEqual, 30)
				So(cfg.ScoreCooldownMS, ShouldEqual, 8000)
				So(cfg.LedgerMaxAgeMin, ShouldEqual, 30)
				So(cfg.LedgerLoadMaxAgeHr, ShouldEqual, 2)
				So(cfg.AnimationDurationMS, ShouldEqual, 4000)
				So(cfg.SettleDelayMS, ShouldEqual, 500)
				So(cfg.QueueCapacity, ShouldEqual, 256)
			})
		})
	})
}

func TestEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("PLACAR_ADDR", ":9191")
		t.Setenv("PLACAR_FEED_URL", "http://feed.local/match")
		t.Setenv("PLACAR_LIVE_INTERVAL_SEC", "3")
		t.Setenv("PLACAR_LOG_LEVEL", "debug")

		Convey("When the config loads", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9191")
				So(cfg.FeedURL, ShouldEqual, "http://feed.local/match")
				So(cfg.LiveIntervalSec, ShouldEqual, 3)
				So(cfg.LogLevel, ShouldEqual, "debug")
			})

			Convey("Then untouched keys keep their defaults", func() {
				So(cfg.IdleIntervalSec, ShouldEqual, 60)
				So(cfg.QueueCapacity, ShouldEqual, 256)
			})
		})
	})
}

func TestFileLayer(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		yaml := "addr: \":7070\"\nfeed_url: \"http://file.local/match\"\nlive_interval_sec: 2\n"
		So(os.WriteFile(path, []byte(yaml), 0o644), ShouldBeNil)
		t.Setenv("PLACAR_CONFIG", path)

		Convey("When only the file is present", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.FeedURL, ShouldEqual, "http://file.local/match")
				So(cfg.LiveIntervalSec, ShouldEqual, 2)
			})
		})

		Convey("When an env var overlaps the file", func() {
			t.Setenv("PLACAR_ADDR", ":9191")
			cfg, err := config.Load(context.Background())

			Convey("Then the env var wins", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9191")
				So(cfg.FeedURL, ShouldEqual, "http://file.local/match")
			})
		})
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("PLACAR_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

		Convey("When the config loads", func() {
			_, err := config.Load(context.Background())

			Convey("Then the load fails explicitly", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}

func TestValidation(t *testing.T) {
	Convey("Given invalid overrides", t, func() {
		Convey("When the listen address is blanked", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o644), ShouldBeNil)
			t.Setenv("PLACAR_CONFIG", path)

			_, err := config.Load(context.Background())

			Convey("Then validation rejects it", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When a poll interval is zero", func() {
			t.Setenv("PLACAR_LIVE_INTERVAL_SEC", "0")
			_, err := config.Load(context.Background())

			Convey("Then validation rejects it", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When a poll interval is negative", func() {
			t.Setenv("PLACAR_IDLE_INTERVAL_SEC", "-5")
			_, err := config.Load(context.Background())

			Convey("Then validation rejects it", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
