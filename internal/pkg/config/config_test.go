package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != DriverMongo || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Mongo.Database != "usertask" {
		t.Fatalf("unexpected mongo db %q", cfg.Mongo.Database)
	}
	if cfg.Redis.IdempotencyTTL != 24*time.Hour || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected durations: ttl=%s shutdown=%s", cfg.Redis.IdempotencyTTL, cfg.ShutdownTimeout)
	}
	if cfg.JWTSecret != "" {
		t.Fatalf("auth must be off by default")
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":            "9090",
		"ENV":             "production",
		"STORE_DRIVER":    "postgres",
		"DATABASE_URL":    "postgres://u:p@db:5432/app",
		"REDIS_DB":        "2",
		"IDEMPOTENCY_TTL": "1h",
		"JWT_SECRET":      "secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" || cfg.StoreDriver != DriverPostgres || cfg.IsDevelopment() {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Postgres.URL != "postgres://u:p@db:5432/app" || cfg.Redis.DB != 2 {
		t.Fatalf("nested overrides not applied: %+v", cfg)
	}
	if cfg.Redis.IdempotencyTTL != time.Hour || cfg.JWTSecret != "secret" {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

func TestLoadFrom_RejectsUnknownDriver(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER": "sqlite",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
