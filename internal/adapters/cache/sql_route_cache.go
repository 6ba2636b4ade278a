package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"
)

// SQLRouteCache is a Postgres-backed cache of directions results.
// Paths are stored as encoded polylines.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch the cached result for a request key.
func (s *SQLRouteCache) Get(
	ctx context.Context,
	key string,
) (_ ports.DirectionsResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.DirectionsResult{}, false, errors.New("route cache: db is nil")
	}

	if key == "" {
		return ports.DirectionsResult{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT status, polyline, distance_meters, duration_seconds
    FROM route_cache
    WHERE request_key = $1;
	`

	return scanRoute(s.DB.QueryRowContext(ctx, q, key))
}

// Store a result for a request key.
func (s *SQLRouteCache) Put(
	ctx context.Context,
	key string,
	result ports.DirectionsResult,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	q := `
	INSERT INTO route_cache (request_key, status, polyline, distance_meters, duration_seconds)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (request_key) DO UPDATE
	SET status = EXCLUDED.status,
		polyline = EXCLUDED.polyline,
		distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q,
		key, result.Status, EncodePath(result.Path), result.DistanceMeters, result.DurationSeconds,
	); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}

// scanRoute maps a route_cache row; sql.ErrNoRows is a cache miss.
func scanRoute(row *sql.Row) (ports.DirectionsResult, bool, error) {
	var (
		status  string
		encoded string
		meters  int
		seconds int
	)
	if err := row.Scan(&status, &encoded, &meters, &seconds); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.DirectionsResult{}, false, nil
		}
		return ports.DirectionsResult{}, false, fmt.Errorf("get route cache: scan row: %w", err)
	}

	path, err := DecodePath(encoded)
	if err != nil {
		return ports.DirectionsResult{}, false, fmt.Errorf("get route cache: decode polyline: %w", err)
	}

	return ports.DirectionsResult{
		Status:          status,
		Path:            path,
		DistanceMeters:  meters,
		DurationSeconds: seconds,
	}, true, nil
}
