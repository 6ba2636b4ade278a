// Package config loads and validates the service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ProviderGoogle = "google"
	ProviderORS    = "ors"
)

// Config holds all configuration values for the server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `validate:"required,numeric"`

	// LogLevel is one of debug, info, warn, error. Defaults to "info".
	LogLevel string `validate:"oneof=debug info warn error"`

	// TripsPath is the JSON or YAML file holding the trip list.
	TripsPath string `validate:"required"`

	// DirectionsProvider selects the routing backend: "google" or "ors".
	DirectionsProvider string `validate:"oneof=google ors"`

	GoogleMapsAPIKey string `validate:"required_if=DirectionsProvider google"`
	ORSAPIKey        string `validate:"required_if=DirectionsProvider ors"`
	ORSBaseURL       string `validate:"omitempty,url"`

	// ProviderQPS paces outbound directions calls. Zero disables pacing.
	ProviderQPS float64 `validate:"gte=0"`

	// ChunkConcurrency bounds in-flight chunk requests per selection.
	ChunkConcurrency int `validate:"gte=1,lte=32"`

	// DatabaseURL enables the Postgres route cache. Takes precedence over DBPath.
	DatabaseURL string
	// DBPath enables the SQLite route cache.
	DBPath string

	CORSOrigins []string
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	qps, err := strconv.ParseFloat(Get("PROVIDER_QPS", "10"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("PROVIDER_QPS: %w", err)
	}

	concurrency, err := strconv.Atoi(Get("CHUNK_CONCURRENCY", "4"))
	if err != nil {
		return Config{}, fmt.Errorf("CHUNK_CONCURRENCY: %w", err)
	}

	cfg := Config{
		Port:               Get("PORT", "8080"),
		LogLevel:           strings.ToLower(Get("LOG_LEVEL", "info")),
		TripsPath:          Get("TRIPS_PATH", "data/trips.json"),
		DirectionsProvider: strings.ToLower(Get("DIRECTIONS_PROVIDER", ProviderGoogle)),
		GoogleMapsAPIKey:   os.Getenv("GOOGLE_MAPS_API_KEY"),
		ORSAPIKey:          os.Getenv("ORS_API_KEY"),
		ORSBaseURL:         os.Getenv("ORS_BASE_URL"),
		ProviderQPS:        qps,
		ChunkConcurrency:   concurrency,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBPath:             os.Getenv("DB_PATH"),
		CORSOrigins:        splitCSV(Get("CORS_ORIGINS", "http://localhost:5173")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Get returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
