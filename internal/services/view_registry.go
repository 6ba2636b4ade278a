package services

import (
	"fmt"
	"sync"
	"trip-route-service/internal/domain"

	"github.com/google/uuid"
)

// ViewRegistry keeps the open trip views, one per client session.
type ViewRegistry struct {
	cfg TripViewConfig

	mu    sync.RWMutex
	views map[uuid.UUID]*TripView
}

func NewViewRegistry(cfg TripViewConfig) *ViewRegistry {
	return &ViewRegistry{
		cfg:   cfg,
		views: make(map[uuid.UUID]*TripView),
	}
}

// Create opens a new empty view and returns its ID.
func (r *ViewRegistry) Create() (uuid.UUID, *TripView) {
	id := uuid.New()
	view := NewTripView(r.cfg)

	r.mu.Lock()
	r.views[id] = view
	r.mu.Unlock()

	return id, view
}

// Get returns the view with the given ID or domain.ErrNotFound.
func (r *ViewRegistry) Get(id uuid.UUID) (*TripView, error) {
	r.mu.RLock()
	view, ok := r.views[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("get view %s: %w", id, domain.ErrNotFound)
	}
	return view, nil
}

// Delete clears and forgets the view with the given ID.
func (r *ViewRegistry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	view, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("delete view %s: %w", id, domain.ErrNotFound)
	}

	view.Clear()
	return nil
}

// Close clears every open view. Used on shutdown to cancel in-flight requests.
func (r *ViewRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, view := range r.views {
		view.Clear()
		delete(r.views, id)
	}
}
