package directions

import (
	"context"
	"sync"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// MockDirectionsProvider returns straight-line routes through the requested
// points. It records every request and can be told to fail or to hold
// responses until released.
type MockDirectionsProvider struct {
	mu       sync.Mutex
	requests []ports.DirectionsRequest
	failures map[domain.Coordinates]string
	gate     <-chan struct{}
}

func NewMockDirectionsProvider() *MockDirectionsProvider {
	return &MockDirectionsProvider{failures: make(map[domain.Coordinates]string)}
}

// FailOrigin makes requests starting at origin fail with status.
func (p *MockDirectionsProvider) FailOrigin(origin domain.Coordinates, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[origin] = status
}

// Hold blocks subsequent responses until gate is closed. Held calls ignore
// context cancellation so tests can deliver late responses on purpose.
func (p *MockDirectionsProvider) Hold(gate <-chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gate = gate
}

// Requests returns a copy of every request received so far.
func (p *MockDirectionsProvider) Requests() []ports.DirectionsRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.DirectionsRequest(nil), p.requests...)
}

func (p *MockDirectionsProvider) Route(ctx context.Context, req ports.DirectionsRequest) (ports.DirectionsResult, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	gate := p.gate
	status, fail := p.failures[req.Origin]
	p.mu.Unlock()

	if gate != nil {
		<-gate
	} else if err := ctx.Err(); err != nil {
		return ports.DirectionsResult{}, err
	}

	if fail {
		return ports.DirectionsResult{}, &ports.StatusError{Status: status}
	}

	path := make([]domain.Coordinates, 0, 2+len(req.Waypoints))
	path = append(path, req.Origin)
	path = append(path, req.Waypoints...)
	path = append(path, req.Destination)

	return ports.DirectionsResult{
		Status:          ports.StatusOK,
		Path:            path,
		DistanceMeters:  1000 * (len(path) - 1),
		DurationSeconds: 60 * (len(path) - 1),
	}, nil
}
