package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "5000" || cfg.Addr() != ":5000" {
		t.Fatalf("unexpected port: %q", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env")
	}
	if cfg.AuthRequired {
		t.Fatalf("auth must be optional by default")
	}
	if cfg.Storage.Backend != StorageMemory || !cfg.Storage.Seed {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected redis: %+v", cfg.Redis)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("kafka must be disabled by default")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.TokenTTL)
	}
	if cfg.RateLimit.RPS != 20 || cfg.RateLimit.Burst != 100 {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":            "8081",
		"ENV":             "production",
		"AUTH_REQUIRED":   "true",
		"STORAGE_BACKEND": "mongo",
		"KAFKA_BROKERS":   "k1:9092,k2:9092",
		"CORS_ORIGIN":     "https://app.healthhub.io",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.IsDevelopment() || !cfg.AuthRequired || cfg.Storage.Backend != StorageMongo {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if len(cfg.CORSOrigin) != 1 || cfg.CORSOrigin[0] != "https://app.healthhub.io" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigin)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_BACKEND": "postgres",
	}))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_RejectsNegativeRateLimit(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"RATE_LIMIT_RPS": "-1",
	}))
	if err == nil {
		t.Fatalf("expected error")
	}
}
