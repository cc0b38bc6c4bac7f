package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev/1'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})

	t.Run("postgres requires DB_URL", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", StoragePostgres)
		t.Setenv("DB_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when DB_URL is missing")
		}
	})

	t.Run("mongo requires MONGO_URI", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", StorageMongo)
		t.Setenv("MONGO_URI", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when MONGO_URI is missing")
		}
	})
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")
		t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3ZxG1Jp7DqS8F6uCk9oQ6a.")
		t.Setenv("ADMIN_TOKEN_SECRET", "0123456789abcdef0123456789abcdef")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("prod requires admin token secret", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3ZxG1Jp7DqS8F6uCk9oQ6a.")
		t.Setenv("ADMIN_TOKEN_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when ADMIN_TOKEN_SECRET is missing in prod")
		}
	})

	t.Run("short admin token secret is rejected", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("ADMIN_TOKEN_SECRET", "too-short")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for a short ADMIN_TOKEN_SECRET")
		}
	})

	t.Run("prod requires admin password hash", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("ADMIN_PASSWORD_HASH", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when ADMIN_PASSWORD_HASH is missing in prod")
		}
	})
}

func TestLoad_Points(t *testing.T) {
	convey.Convey("Given a dev environment without storage settings", t, func() {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("STORAGE_DRIVER", "")
		t.Setenv("APP_CONFIG_FILE", "")

		convey.Convey("When no points are configured", func() {
			t.Setenv("POINTS_FIRST_PLACE", "")
			t.Setenv("POINTS_SECOND_PLACE", "")
			t.Setenv("POINTS_THIRD_PLACE", "")
			t.Setenv("POINTS_PARTICIPATION", "")

			cfg, err := Load()

			convey.Convey("Then the contest defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.StorageDriver, convey.ShouldEqual, StorageMemory)
				convey.So(cfg.PointsFirstPlace, convey.ShouldEqual, 10)
				convey.So(cfg.PointsSecondPlace, convey.ShouldEqual, 7)
				convey.So(cfg.PointsThirdPlace, convey.ShouldEqual, 5)
				convey.So(cfg.PointsParticipation, convey.ShouldEqual, 2)
				convey.So(cfg.CacheTTL, convey.ShouldEqual, 60*time.Second)
				convey.So(cfg.AdminSessionTTL, convey.ShouldEqual, 12*time.Hour)
			})
		})

		convey.Convey("When points are overridden", func() {
			t.Setenv("POINTS_FIRST_PLACE", "15")
			t.Setenv("POINTS_PARTICIPATION", "0")

			cfg, err := Load()

			convey.Convey("Then the overrides are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PointsFirstPlace, convey.ShouldEqual, 15)
				convey.So(cfg.PointsParticipation, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When a points value is negative", func() {
			t.Setenv("POINTS_THIRD_PLACE", "-1")

			_, err := Load()

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "POINTS_THIRD_PLACE")
			})
		})

		convey.Convey("When a points value is not a number", func() {
			t.Setenv("POINTS_SECOND_PLACE", "seven")

			_, err := Load()

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestLoad_ConfigFile(t *testing.T) {
	convey.Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte("app_http_addr: \":9090\"\nstorage_driver: mongo\nmongo_uri: mongodb://localhost:27017\npoints_first_place: 12\ncache_ttl: 5s\n")
		convey.So(os.WriteFile(path, content, 0o600), convey.ShouldBeNil)

		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("APP_CONFIG_FILE", path)

		convey.Convey("When only the file sets values", func() {
			cfg, err := Load()

			convey.Convey("Then the file values are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.HTTPAddr, convey.ShouldEqual, ":9090")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, StorageMongo)
				convey.So(cfg.MongoURI, convey.ShouldEqual, "mongodb://localhost:27017")
				convey.So(cfg.PointsFirstPlace, convey.ShouldEqual, 12)
				convey.So(cfg.CacheTTL, convey.ShouldEqual, 5*time.Second)
			})
		})

		convey.Convey("When the environment sets the same key", func() {
			t.Setenv("APP_HTTP_ADDR", ":7070")

			cfg, err := Load()

			convey.Convey("Then the environment wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.HTTPAddr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When the file does not exist", func() {
			t.Setenv("APP_CONFIG_FILE", filepath.Join(dir, "missing.yaml"))

			_, err := Load()

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSplitCSV(t *testing.T) {
	t.Parallel()

	got := splitCSV(" https://a.example, ,https://b.example ")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected split result: %#v", got)
	}
}
