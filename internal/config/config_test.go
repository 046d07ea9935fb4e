package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_DSN", "CATALOG_SOURCE", "ORDER_SUBMITTER", "CAROUSEL_INTERVAL_SECONDS", "KAFKA_BROKERS"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" || cfg.DBConnString != "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.CatalogSource != CatalogSample || cfg.OrderSubmitter != SubmitterStub {
		t.Fatalf("unexpected sources %q %q", cfg.CatalogSource, cfg.OrderSubmitter)
	}
	if cfg.CarouselInterval != 5*time.Second {
		t.Fatalf("expected 5s carousel interval, got %s", cfg.CarouselInterval)
	}
	if !reflect.DeepEqual(cfg.KafkaBrokers, []string{"localhost:9092"}) {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " a:9092, ,b:9092 ")
	t.Setenv("SESSION_IDLE_TIMEOUT_SECONDS", "90")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("ADMIN_PASSWORD_HASH", "hash")
	t.Setenv("JWT_SECRET", "secret")

	cfg := FromEnv()
	if !reflect.DeepEqual(cfg.KafkaBrokers, []string{"a:9092", "b:9092"}) {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.SessionIdleTimeout != 90*time.Second {
		t.Fatalf("unexpected idle timeout %s", cfg.SessionIdleTimeout)
	}
	if cfg.RateLimitBurst != 40 || cfg.RateLimitRPS != 2.5 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if !cfg.AdminEnabled() {
		t.Fatalf("expected admin enabled")
	}
}
