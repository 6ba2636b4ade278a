package config_test

import (
	"testing"
	"trip-route-service/internal/config"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "TRIPS_PATH", "DIRECTIONS_PROVIDER", "GOOGLE_MAPS_API_KEY",
		"ORS_API_KEY", "ORS_BASE_URL", "PROVIDER_QPS", "CHUNK_CONCURRENCY",
		"DATABASE_URL", "DB_PATH", "CORS_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_MAPS_API_KEY", "gkey")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "data/trips.json", cfg.TripsPath)
	require.Equal(t, config.ProviderGoogle, cfg.DirectionsProvider)
	require.Equal(t, 10.0, cfg.ProviderQPS)
	require.Equal(t, 4, cfg.ChunkConcurrency)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoad_orsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DIRECTIONS_PROVIDER", "ORS")
	t.Setenv("ORS_API_KEY", "okey")
	t.Setenv("ORS_BASE_URL", "http://ors.internal:8082/ors")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROVIDER_QPS", "2.5")
	t.Setenv("CHUNK_CONCURRENCY", "8")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, config.ProviderORS, cfg.DirectionsProvider)
	require.Equal(t, "okey", cfg.ORSAPIKey)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 2.5, cfg.ProviderQPS)
	require.Equal(t, 8, cfg.ChunkConcurrency)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoad_missingProviderKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("DIRECTIONS_PROVIDER", "ors")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "ORSAPIKey")
}

func TestLoad_rejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("DIRECTIONS_PROVIDER", "mapbox")

	_, err := config.Load()

	require.ErrorContains(t, err, "DirectionsProvider")
}

func TestLoad_rejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_MAPS_API_KEY", "gkey")
	t.Setenv("CHUNK_CONCURRENCY", "many")

	_, err := config.Load()

	require.ErrorContains(t, err, "CHUNK_CONCURRENCY")
}
