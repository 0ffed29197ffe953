package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	JWTIssuer          string
	JWTAudience        string
	AccessTokenTTL     time.Duration
	ClockSkew          time.Duration
	CORSAllowedOrigins []string
	ProductCacheTTL    time.Duration
	TokenRateWindow    time.Duration
	TokenRateMax       int
	BodyMaxBytes       int64
	TracingEnabled     bool
	TracingEndpoint    string
	TracingSampleRatio float64
	MetricsBuckets     string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		JWTSecret:          k.String("JWT_SECRET"),
		JWTIssuer:          valueOrDefault(k.String("JWT_ISSUER"), "storefront-api"),
		JWTAudience:        valueOrDefault(k.String("JWT_AUDIENCE"), "storefront-clients"),
		AccessTokenTTL:     parseDuration(k.String("ACCESS_TOKEN_TTL"), "30m"),
		ClockSkew:          parseDuration(k.String("JWT_CLOCK_SKEW"), "30s"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		ProductCacheTTL:    parseDuration(k.String("PRODUCT_CACHE_TTL"), "60s"),
		TokenRateWindow:    parseDuration(k.String("TOKEN_RATE_WINDOW"), "1m"),
		TokenRateMax:       int(k.Int64("TOKEN_RATE_MAX")),
		BodyMaxBytes:       k.Int64("BODY_MAX_BYTES"),
		TracingEnabled:     k.Bool("TRACING_ENABLED"),
		TracingEndpoint:    k.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TracingSampleRatio: k.Float64("TRACING_SAMPLE_RATIO"),
		MetricsBuckets:     k.String("METRICS_BUCKETS_MS"),
	}
	if cfg.TracingSampleRatio <= 0 {
		cfg.TracingSampleRatio = 1
	}
	if cfg.TokenRateMax <= 0 {
		cfg.TokenRateMax = 30
	}
	if cfg.BodyMaxBytes <= 0 {
		cfg.BodyMaxBytes = 1 << 20
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
