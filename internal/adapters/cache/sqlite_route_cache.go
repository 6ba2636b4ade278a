package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"
)

// SQLite backed cache of directions results.
// Keys are expected to come from RequestKey.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Fetch the cached result for a request key.
func (s *SqliteRouteCache) Get(
	ctx context.Context,
	key string,
) (_ ports.DirectionsResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return ports.DirectionsResult{}, false, errors.New("route cache: db is nil")
	}

	if key == "" {
		return ports.DirectionsResult{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT 
        status,
        polyline,
        distance_meters,
        duration_seconds
    FROM route_cache
    WHERE request_key = ?;
	`

	return scanRoute(s.DB.QueryRowContext(ctx, q, key))
}

// Store a result for a request key.
func (s *SqliteRouteCache) Put(
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
	INSERT OR REPLACE INTO route_cache (
        request_key,
        status,
        polyline,
        distance_meters,
        duration_seconds
    )
    VALUES (?, ?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q,
		key, result.Status, EncodePath(result.Path), result.DistanceMeters, result.DurationSeconds,
	); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
