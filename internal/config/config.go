package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration.
type Config struct {
	Port           string
	APIKey         string
	LogLevel       string
	Environment    string
	ServiceName    string
	AllowedOrigins []string
	SeedDemoData   bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string
}

// InfluxEnabled reports whether created sensors should be mirrored to InfluxDB.
func (c Config) InfluxEnabled() bool {
	return c.InfluxDBURL != ""
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// LoadConfig loads the configuration from environment variables, reading a
// .env file first when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on system environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults for unset values.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		Port:           get("PORT", "3000"),
		APIKey:         get("API_KEY", "default-api-key-change-me"),
		LogLevel:       get("LOG_LEVEL", "info"),
		Environment:    get("ENVIRONMENT", get("GO_ENV", "development")),
		ServiceName:    get("SERVICE_NAME", "node"),
		AllowedOrigins: splitList(get("CORS_ALLOWED_ORIGINS", "*")),
		InfluxDBURL:    get("INFLUXDB_URL", ""),
		InfluxDBToken:  get("INFLUXDB_TOKEN", ""),
		InfluxDBOrg:    get("INFLUXDB_ORG", ""),
		InfluxDBBucket: get("INFLUXDB_BUCKET", "sensors"),
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	seed, err := strconv.ParseBool(get("SEED_DEMO_DATA", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SEED_DEMO_DATA: %w", err)
	}
	cfg.SeedDemoData = seed

	if cfg.InfluxEnabled() && (cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "") {
		return Config{}, fmt.Errorf("InfluxDB configuration is incomplete. Please set INFLUXDB_TOKEN and INFLUXDB_ORG alongside INFLUXDB_URL")
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
