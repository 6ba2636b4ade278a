package ports

import (
	"context"
	"fmt"
	"trip-route-service/internal/domain"
)

// TravelMode selects the routing profile for a directions request.
type TravelMode string

const TravelModeDriving TravelMode = "driving"

// StatusOK is the provider status of a successful directions lookup.
const StatusOK = "OK"

// Input for a single directions lookup: one origin, one destination and
// the intermediate stops to visit in order.
type DirectionsRequest struct {
	Origin       domain.Coordinates
	Destination  domain.Coordinates
	Waypoints    []domain.Coordinates
	Mode         TravelMode
	Alternatives bool
}

// Route geometry and aggregate metrics returned by a provider.
type DirectionsResult struct {
	Status          string
	Path            []domain.Coordinates
	DistanceMeters  int
	DurationSeconds int
}

// StatusError reports a non-OK status returned by the directions provider
// (e.g. ZERO_RESULTS, REQUEST_DENIED, or an HTTP 4xx from ORS).
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("directions status %s", e.Status)
	}
	return fmt.Sprintf("directions status %s: %s", e.Status, e.Message)
}

// Contract for retrieving a driving route through an ordered list of points.
type DirectionsProvider interface {
	// Return the route from origin to destination through the waypoints.
	Route(ctx context.Context, req DirectionsRequest) (DirectionsResult, error)
}
