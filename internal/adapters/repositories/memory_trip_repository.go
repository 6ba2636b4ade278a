package repositories

import (
	"context"
	"fmt"
	"slices"
	"trip-route-service/internal/domain"
)

// In-memory implementation of the TripRepository port.
// The list is fixed at construction; trips are never persisted.
type MemoryTripRepository struct {
	trips []domain.Trip
}

func NewMemoryTripRepository(trips []domain.Trip) *MemoryTripRepository {
	return &MemoryTripRepository{trips: slices.Clone(trips)}
}

// Return all trips in list order.
func (m *MemoryTripRepository) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	return slices.Clone(m.trips), nil
}

// Return the trip at index.
func (m *MemoryTripRepository) GetTrip(ctx context.Context, index int) (domain.Trip, error) {
	if index < 0 || index >= len(m.trips) {
		return domain.Trip{}, fmt.Errorf("get trip: index %d: %w", index, domain.ErrNotFound)
	}
	return m.trips[index], nil
}
