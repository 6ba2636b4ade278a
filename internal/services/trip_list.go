package services

import (
	"context"
	"fmt"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// TripListEntry is one selectable row of the trip list.
type TripListEntry struct {
	Index      int
	Trip       domain.Trip
	Color      domain.Color
	ChunkCount int
}

// ListTrips returns the trip list with each trip's assigned color and the
// number of directions requests selecting it would issue.
func ListTrips(ctx context.Context, repo ports.TripRepository) ([]TripListEntry, error) {
	trips, err := repo.ListTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	colors := AssignColors(len(trips))
	entries := make([]TripListEntry, 0, len(trips))
	for i, t := range trips {
		entries = append(entries, TripListEntry{
			Index:      i,
			Trip:       t,
			Color:      colors[i],
			ChunkCount: ChunkCount(len(t.Stops)),
		})
	}

	return entries, nil
}
