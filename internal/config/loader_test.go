package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/taykof/vaultlog/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no configuration sources", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then the defaults apply", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.MetricsAddr, ShouldEqual, ":9210")
			So(cfg.MediumDriver, ShouldEqual, "sqlite")
			So(cfg.MediumPath(), ShouldEqual, cfg.SQLitePath)
		})
	})
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VAULTLOG_MEDIUM", "file")
	t.Setenv("VAULTLOG_DATA_DIR", "/tmp/vaultlog-test")
	t.Setenv("VAULTLOG_LOG_LEVEL", "debug")

	Convey("Given environment overrides", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		So(cfg.MediumDriver, ShouldEqual, "file")
		So(cfg.LogLevel, ShouldEqual, "debug")

		Convey("Then the medium path follows the driver", func() {
			So(cfg.MediumPath(), ShouldEqual, "/tmp/vaultlog-test")
		})
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "log_level: warn\nmedium: memory\nmetrics_addr: \":9999\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("VAULTLOG_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)
		So(cfg.LogLevel, ShouldEqual, "warn")
		So(cfg.MediumDriver, ShouldEqual, "memory")
		So(cfg.MetricsAddr, ShouldEqual, ":9999")
	})
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("medium: memory\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("VAULTLOG_CONFIG", path)
	t.Setenv("VAULTLOG_MEDIUM", "sqlite")

	Convey("Given both a file and an env override", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)
		So(cfg.MediumDriver, ShouldEqual, "sqlite")
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given an unknown medium driver", t, func() {
		t.Setenv("VAULTLOG_MEDIUM", "redis")
		_, err := config.Load(context.Background())
		So(err, ShouldWrap, config.ErrInvalidConfig)
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("VAULTLOG_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := config.Load(context.Background())
		So(err, ShouldWrap, config.ErrLoadConfig)
	})
}
