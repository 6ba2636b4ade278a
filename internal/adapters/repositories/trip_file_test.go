package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"trip-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTripsFromJSON(t *testing.T) {
	path := writeFile(t, "trips.json", `[
		{
			"stops": [
				{"name": " Depot ", "lat": -1.2864, "lon": 36.8172},
				{"name": "Ruiru", "lat": -1.1456, "lon": 36.9635}
			],
			"vehicle": "KDA 001A",
			"territory": "Nairobi",
			"countryCode": "KE",
			"tripValue": 1250.5,
			"vehicleCost": 300,
			"distanceCovered": 42.7,
			"code": 1001
		}
	]`)

	trips, err := LoadTripsFromFile(path)
	require.NoError(t, err)
	require.Len(t, trips, 1)

	trip := trips[0]
	assert.Equal(t, "KDA 001A", trip.Vehicle)
	assert.Equal(t, "KE", trip.CountryCode)
	assert.Equal(t, 1250.5, trip.TripValue)
	assert.Equal(t, 42.7, trip.DistanceCovered)
	assert.Equal(t, 1001, trip.Code)
	require.Len(t, trip.Stops, 2)
	assert.Equal(t, "Depot", trip.Stops[0].Name)
	assert.Equal(t, domain.Coordinates{Lat: -1.1456, Lon: 36.9635}, trip.Stops[1].Coordinates())
}

func TestLoadTripsFromYAML(t *testing.T) {
	path := writeFile(t, "trips.yaml", `
- vehicle: KDB 002B
  territory: Kiambu
  countryCode: KE
  code: 7
  stops:
    - {name: Depot, lat: -1.17, lon: 36.83}
- vehicle: KDC 003C
  code: 8
  stops:
    - {name: A, lat: 0.52, lon: 35.27}
    - {name: B, lat: 0.51, lon: 35.28}
`)

	trips, err := LoadTripsFromFile(path)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "KDB 002B", trips[0].Vehicle)
	assert.Equal(t, 8, trips[1].Code)
	assert.Len(t, trips[1].Stops, 2)
}

func TestLoadTripsValidation(t *testing.T) {
	cases := map[string]string{
		"no stops":     `[{"code": 1, "stops": []}]`,
		"bad latitude": `[{"code": 1, "stops": [{"lat": 91, "lon": 0}]}]`,
		"bad distance": `[{"code": 1, "distanceCovered": -1, "stops": [{"lat": 0, "lon": 0}]}]`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTripsFromFile(writeFile(t, "trips.json", body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
		})
	}
}

func TestLoadTripsErrors(t *testing.T) {
	_, err := LoadTripsFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadTripsFromFile(writeFile(t, "trips.csv", "a,b"))
	assert.ErrorContains(t, err, "unsupported file extension")

	_, err = LoadTripsFromFile(writeFile(t, "trips.json", "{not json"))
	assert.ErrorContains(t, err, "parse json")
}

func TestMemoryTripRepository(t *testing.T) {
	trips := []domain.Trip{{Code: 1}, {Code: 2}}
	repo := NewMemoryTripRepository(trips)
	trips[0].Code = 99

	ctx := context.Background()
	list, err := repo.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Code)

	trip, err := repo.GetTrip(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, trip.Code)

	for _, idx := range []int{-1, 2} {
		_, err := repo.GetTrip(ctx, idx)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	}
}
