package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var configEnvVars = []string{
	"HOST", "PORT", "SERVICE_NAME", "GEOCODING_URL", "FORECAST_URL", "ZIPKIN_URL",
	"TRACING_ENABLED", "CORS_ALLOWED_ORIGINS", "UPSTREAM_RATE_LIMIT", "UPSTREAM_BURST", "UPSTREAM_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Expected defaults %+v, got %+v", Default(), cfg)
	}
	if cfg.Addr() != "0.0.0.0:8001" {
		t.Errorf("Expected addr 0.0.0.0:8001, got %s", cfg.Addr())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("GEOCODING_URL", "http://geo.local")
	t.Setenv("FORECAST_URL", "http://forecast.local")
	t.Setenv("TRACING_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("UPSTREAM_RATE_LIMIT", "2.5")
	t.Setenv("UPSTREAM_BURST", "4")
	t.Setenv("UPSTREAM_TIMEOUT", "15s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("Unexpected addr %s", cfg.Addr())
	}
	if cfg.GeocodingURL != "http://geo.local" || cfg.ForecastURL != "http://forecast.local" {
		t.Errorf("Unexpected upstream URLs: %s %s", cfg.GeocodingURL, cfg.ForecastURL)
	}
	if cfg.TracingEnabled {
		t.Error("Expected tracing disabled")
	}
	wantOrigins := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, wantOrigins) {
		t.Errorf("Expected origins %v, got %v", wantOrigins, cfg.CORSAllowedOrigins)
	}
	if cfg.UpstreamRateLimit != 2.5 || cfg.UpstreamBurst != 4 {
		t.Errorf("Unexpected rate limit %v/%d", cfg.UpstreamRateLimit, cfg.UpstreamBurst)
	}
	if cfg.UpstreamTimeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %s", cfg.UpstreamTimeout)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "http"},
		{"PORT", "70000"},
		{"TRACING_ENABLED", "maybe"},
		{"UPSTREAM_RATE_LIMIT", "-1"},
		{"UPSTREAM_RATE_LIMIT", "fast"},
		{"UPSTREAM_BURST", "0"},
		{"UPSTREAM_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv não sobrescreve variáveis já definidas, então PORT precisa estar ausente
	os.Unsetenv("PORT")
	t.Cleanup(func() { os.Unsetenv("PORT") })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=8123\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8123" {
		t.Errorf("Expected port from .env file, got %s", cfg.Port)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8001" {
		t.Errorf("Expected default port, got %s", cfg.Port)
	}
}
