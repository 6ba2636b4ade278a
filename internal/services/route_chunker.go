package services

import (
	"fmt"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

const (
	// MaxStopsPerRequest is the provider ceiling: origin, destination and
	// up to 23 intermediate waypoints.
	MaxStopsPerRequest = 25

	// ChunkStride is the number of stops each chunk advances by once a trip
	// no longer fits in a single request.
	ChunkStride = 24
)

// ChunkCount returns how many directions requests a trip with stopCount stops needs.
func ChunkCount(stopCount int) int {
	if stopCount <= 0 {
		return 0
	}
	if stopCount <= MaxStopsPerRequest {
		return 1
	}
	// Ceiling division.
	return (stopCount + ChunkStride - 1) / ChunkStride
}

// PlanChunks splits a trip's stops into provider-sized route chunks.
//
// Trips with up to MaxStopsPerRequest stops produce a single chunk. Longer
// trips are cut every ChunkStride stops; chunk k spans
// [k*ChunkStride, min(k*ChunkStride+ChunkStride, S-1)], so the destination of
// one chunk is the origin of the next.
func PlanChunks(trip domain.Trip) ([]domain.RouteChunk, error) {
	n := len(trip.Stops)
	if n == 0 {
		return nil, fmt.Errorf("plan chunks: trip %d has no stops: %w", trip.Code, domain.ErrValidation)
	}

	if n <= MaxStopsPerRequest {
		return []domain.RouteChunk{newChunk(trip.Stops, 0, 0, n-1)}, nil
	}

	count := ChunkCount(n)
	chunks := make([]domain.RouteChunk, 0, count)
	for k := 0; k < count; k++ {
		start := k * ChunkStride
		end := min(start+ChunkStride, n-1)
		chunks = append(chunks, newChunk(trip.Stops, k, start, end))
	}

	return chunks, nil
}

func newChunk(stops []domain.TripStop, index, start, end int) domain.RouteChunk {
	waypoints := make([]domain.Coordinates, 0, max(end-start-1, 0))
	for i := start + 1; i < end; i++ {
		waypoints = append(waypoints, stops[i].Coordinates())
	}

	return domain.RouteChunk{
		Index:       index,
		Start:       start,
		End:         end,
		Origin:      stops[start].Coordinates(),
		Destination: stops[end].Coordinates(),
		Waypoints:   waypoints,
	}
}

// ChunkRequests builds one driving directions request per chunk.
// A trip that fits in one request asks for route alternatives.
func ChunkRequests(chunks []domain.RouteChunk) []ports.DirectionsRequest {
	reqs := make([]ports.DirectionsRequest, 0, len(chunks))
	for _, c := range chunks {
		reqs = append(reqs, ports.DirectionsRequest{
			Origin:       c.Origin,
			Destination:  c.Destination,
			Waypoints:    c.Waypoints,
			Mode:         ports.TravelModeDriving,
			Alternatives: len(chunks) == 1,
		})
	}
	return reqs
}
