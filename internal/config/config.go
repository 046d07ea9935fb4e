package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	CatalogSample   = "sample"
	CatalogPostgres = "postgres"

	SubmitterStub     = "stub"
	SubmitterKafka    = "kafka"
	SubmitterPostgres = "postgres"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	DBConnString    string
	DBMaxConns      int
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// CatalogSource is "sample" (in-memory seed) or "postgres".
	CatalogSource string

	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	AdminTokenTTL     time.Duration

	CarouselInterval   time.Duration
	SessionIdleTimeout time.Duration

	OrderSubmitter  string
	KafkaBrokers    []string
	KafkaOrderTopic string

	RateLimitRPS   float64
	RateLimitBurst int
}

// FromEnv builds Config with defaults, overridden by environment variables.
// An empty DB_DSN means the service runs without a database.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DBConnString:    os.Getenv("DB_DSN"),
		DBMaxConns:      envInt("DB_MAX_CONNS", 10),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		AllowedOrigins:  envList("ALLOWED_ORIGINS", []string{"*"}),

		CatalogSource: envOrDefault("CATALOG_SOURCE", CatalogSample),

		AdminUsername:     envOrDefault("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminTokenTTL:     envDuration("ADMIN_TOKEN_TTL_SECONDS", 12*time.Hour),

		CarouselInterval:   envDuration("CAROUSEL_INTERVAL_SECONDS", 5*time.Second),
		SessionIdleTimeout: envDuration("SESSION_IDLE_TIMEOUT_SECONDS", 30*time.Minute),

		OrderSubmitter:  envOrDefault("ORDER_SUBMITTER", SubmitterStub),
		KafkaBrokers:    envList("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaOrderTopic: envOrDefault("KAFKA_ORDER_TOPIC", "storefront.orders"),

		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 40),
	}
}

// AdminEnabled reports whether admin credentials are configured.
func (c Config) AdminEnabled() bool {
	return c.AdminPasswordHash != "" && c.JWTSecret != ""
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
