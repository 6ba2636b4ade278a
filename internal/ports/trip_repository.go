package ports

import (
	"context"
	"trip-route-service/internal/domain"
)

// Port: a read-only boundary for the trip list supplied by the host.
type TripRepository interface {
	// Retrieve all trips in list order.
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	// Retrieve the trip at index. Returns domain.ErrNotFound when out of range.
	GetTrip(ctx context.Context, index int) (domain.Trip, error)
}
