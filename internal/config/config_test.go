package config

import (
	"strings"
	"testing"
	"time"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL": "postgres://localhost:5432/storefront",
		"REDIS_URL":    "redis://localhost:6379/0",
		"JWT_SECRET":   "test-secret",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(baseEnv())
	if err != nil {
		t.Fatalf("LoadForTests: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.JWTIssuer != "storefront-api" {
		t.Fatalf("JWTIssuer = %q", cfg.JWTIssuer)
	}
	if cfg.JWTAudience != "storefront-clients" {
		t.Fatalf("JWTAudience = %q", cfg.JWTAudience)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("AccessTokenTTL = %v, want 30m", cfg.AccessTokenTTL)
	}
	if cfg.ClockSkew != 30*time.Second {
		t.Fatalf("ClockSkew = %v, want 30s", cfg.ClockSkew)
	}
	if cfg.TokenRateMax != 30 {
		t.Fatalf("TokenRateMax = %d, want 30", cfg.TokenRateMax)
	}
	if cfg.TokenRateWindow != time.Minute {
		t.Fatalf("TokenRateWindow = %v, want 1m", cfg.TokenRateWindow)
	}
	if cfg.BodyMaxBytes != 1<<20 {
		t.Fatalf("BodyMaxBytes = %d, want 1MiB", cfg.BodyMaxBytes)
	}
	if cfg.TracingSampleRatio != 1 {
		t.Fatalf("TracingSampleRatio = %v, want 1", cfg.TracingSampleRatio)
	}
}

func TestLoadOverrides(t *testing.T) {
	env := baseEnv()
	env["APP_ENV"] = "production"
	env["PORT"] = "9090"
	env["ACCESS_TOKEN_TTL"] = "15m"
	env["TOKEN_RATE_MAX"] = "5"
	env["CORS_ALLOWED_ORIGINS"] = "https://shop.example.com, https://admin.example.com"
	env["TRACING_ENABLED"] = "true"
	env["TRACING_SAMPLE_RATIO"] = "0.25"

	cfg, err := LoadForTests(env)
	if err != nil {
		t.Fatalf("LoadForTests: %v", err)
	}
	if cfg.AppEnv != "production" {
		t.Fatalf("AppEnv = %q", cfg.AppEnv)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("AccessTokenTTL = %v", cfg.AccessTokenTTL)
	}
	if cfg.TokenRateMax != 5 {
		t.Fatalf("TokenRateMax = %d", cfg.TokenRateMax)
	}
	want := []string{"https://shop.example.com", "https://admin.example.com"}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != want[0] || cfg.CORSAllowedOrigins[1] != want[1] {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.TracingEnabled {
		t.Fatal("TracingEnabled should be true")
	}
	if cfg.TracingSampleRatio != 0.25 {
		t.Fatalf("TracingSampleRatio = %v", cfg.TracingSampleRatio)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	cases := []string{"DATABASE_URL", "REDIS_URL", "JWT_SECRET"}
	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			env := baseEnv()
			env[missing] = ""
			_, err := LoadForTests(env)
			if err == nil {
				t.Fatalf("expected error when %s is absent", missing)
			}
			if !strings.Contains(err.Error(), missing) {
				t.Fatalf("error %q does not name %s", err, missing)
			}
		})
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	env := baseEnv()
	env["ACCESS_TOKEN_TTL"] = "not-a-duration"
	cfg, err := LoadForTests(env)
	if err != nil {
		t.Fatalf("LoadForTests: %v", err)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("AccessTokenTTL = %v, want fallback 30m", cfg.AccessTokenTTL)
	}
}

func TestHTTPAddr(t *testing.T) {
	cases := []struct {
		port string
		want string
	}{
		{"8080", ":8080"},
		{":9090", ":9090"},
		{"", ":8080"},
		{"  ", ":8080"},
	}
	for _, tc := range cases {
		cfg := Config{Port: tc.port}
		if got := cfg.HTTPAddr(); got != tc.want {
			t.Fatalf("HTTPAddr(%q) = %q, want %q", tc.port, got, tc.want)
		}
	}
}
