package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config reúne a configuração do serviço, lida do ambiente
type Config struct {
	Host               string
	Port               string
	ServiceName        string
	GeocodingURL       string
	ForecastURL        string
	ZipkinURL          string
	TracingEnabled     bool
	CORSAllowedOrigins []string
	UpstreamRateLimit  float64
	UpstreamBurst      int
	UpstreamTimeout    time.Duration
}

// Default devolve a configuração usada quando nenhuma variável está definida
func Default() Config {
	return Config{
		Host:               "0.0.0.0",
		Port:               "8001",
		ServiceName:        "weather-api",
		GeocodingURL:       "https://geocoding-api.open-meteo.com",
		ForecastURL:        "https://api.open-meteo.com",
		ZipkinURL:          "http://zipkin:9411/api/v2/spans",
		TracingEnabled:     true,
		CORSAllowedOrigins: []string{"*"},
		UpstreamBurst:      1,
	}
}

// Addr é o endereço de escuta do servidor HTTP
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load carrega .env (se existir) e depois lê as variáveis de ambiente
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		log.Printf("Aviso: erro ao carregar .env: %v", err)
	}
	return FromEnv()
}

// FromEnv lê a configuração apenas do ambiente do processo
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.ParseUint(v, 10, 16); err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = v
	}
	if v := os.Getenv("SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
	if v := os.Getenv("GEOCODING_URL"); v != "" {
		cfg.GeocodingURL = v
	}
	if v := os.Getenv("FORECAST_URL"); v != "" {
		cfg.ForecastURL = v
	}
	if v := os.Getenv("ZIPKIN_URL"); v != "" {
		cfg.ZipkinURL = v
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TRACING_ENABLED %q: %w", v, err)
		}
		cfg.TracingEnabled = enabled
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	if v := os.Getenv("UPSTREAM_RATE_LIMIT"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return Config{}, fmt.Errorf("invalid UPSTREAM_RATE_LIMIT %q", v)
		}
		cfg.UpstreamRateLimit = rps
	}
	if v := os.Getenv("UPSTREAM_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			return Config{}, fmt.Errorf("invalid UPSTREAM_BURST %q", v)
		}
		cfg.UpstreamBurst = burst
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout < 0 {
			return Config{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT %q", v)
		}
		cfg.UpstreamTimeout = timeout
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
