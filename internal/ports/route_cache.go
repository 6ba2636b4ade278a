package ports

import "context"

// Persistent store of directions results keyed by a canonical request key.
type RouteCache interface {
	// Return the cached result for key and whether it was present.
	Get(ctx context.Context, key string) (DirectionsResult, bool, error)
	// Store a result under key, replacing any previous entry.
	Put(ctx context.Context, key string, result DirectionsResult) error
}
