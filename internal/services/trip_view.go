package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

const (
	routeStrokeWeight = 5
	originMarkerScale = 20
	stopMarkerScale   = 7
	originMarkerColor = "green"

	defaultChunkConcurrency = 4
)

// TripViewConfig holds the dependencies shared by every view.
type TripViewConfig struct {
	Trips    ports.TripRepository
	Provider ports.DirectionsProvider
	Logger   *slog.Logger
	// Maximum number of chunk requests in flight per selection.
	Concurrency int
}

// TripView holds one client's map state: the selected trip and one renderer
// per route chunk of that trip.
//
// Every selection gets a new generation. Selecting another trip (or clearing)
// cancels the requests of the previous generation and replaces the renderer
// slots, and responses that belong to an older generation are dropped.
// TripView is safe for concurrent use.
type TripView struct {
	trips       ports.TripRepository
	provider    ports.DirectionsProvider
	log         *slog.Logger
	concurrency int

	mu         sync.Mutex
	generation uint64
	selected   *int
	trip       domain.Trip
	color      domain.Color
	renderers  []domain.Renderer
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewTripView(cfg TripViewConfig) *TripView {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultChunkConcurrency
	}

	return &TripView{
		trips:       cfg.Trips,
		provider:    cfg.Provider,
		log:         logger,
		concurrency: concurrency,
	}
}

// Select makes the trip at index the current selection and starts fetching
// its route chunks. It returns once the requests are dispatched; use Wait to
// block until they settle.
//
// The requests outlive ctx's cancellation (an HTTP request may return before
// the provider answers) but keep its values for logging.
func (v *TripView) Select(ctx context.Context, index int) error {
	trips, err := v.trips.ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("select trip: %w", err)
	}

	if index < 0 || index >= len(trips) {
		return fmt.Errorf("select trip: index %d: %w", index, domain.ErrNotFound)
	}

	trip := trips[index]
	chunks, err := PlanChunks(trip)
	if err != nil {
		return fmt.Errorf("select trip %d: %w", index, err)
	}
	reqs := ChunkRequests(chunks)
	color := AssignColors(len(trips))[index]

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	v.mu.Lock()
	v.resetLocked()
	v.generation++
	gen := v.generation
	selected := index
	v.selected = &selected
	v.trip = trip
	v.color = color
	v.cancel = cancel
	v.done = done
	v.renderers = make([]domain.Renderer, len(chunks))
	for i := range v.renderers {
		v.renderers[i] = domain.Renderer{
			ChunkIndex:   i,
			State:        domain.RendererPending,
			StrokeColor:  color,
			StrokeWeight: routeStrokeWeight,
		}
	}
	v.mu.Unlock()

	v.log.InfoContext(ctx, "trip selected",
		slog.Int("trip", index+1),
		slog.Int("stops", len(trip.Stops)),
		slog.Int("chunks", len(chunks)),
		slog.Uint64("generation", gen),
	)

	go v.dispatch(runCtx, gen, index, reqs, done)

	return nil
}

// dispatch issues every chunk request with bounded concurrency and closes
// done once all of them have settled.
func (v *TripView) dispatch(
	ctx context.Context,
	gen uint64,
	tripIndex int,
	reqs []ports.DirectionsRequest,
	done chan struct{},
) {
	defer close(done)

	sem := make(chan struct{}, v.concurrency)
	var wg sync.WaitGroup

	for i, req := range reqs {
		wg.Add(1)
		go func(chunk int, req ports.DirectionsRequest) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				v.settle(ctx, gen, tripIndex, len(reqs), chunk, ports.DirectionsResult{}, ctx.Err())
				return
			}
			defer func() { <-sem }()

			res, err := v.provider.Route(ctx, req)
			v.settle(ctx, gen, tripIndex, len(reqs), chunk, res, err)
		}(i, req)
	}

	wg.Wait()
}

// settle writes a chunk response into its renderer slot, unless the
// selection has moved on since the request was issued.
func (v *TripView) settle(
	ctx context.Context,
	gen uint64,
	tripIndex int,
	chunkCount int,
	chunk int,
	res ports.DirectionsResult,
	err error,
) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation || chunk >= len(v.renderers) {
		v.log.DebugContext(ctx, "dropping stale directions response",
			slog.Int("trip", tripIndex+1),
			slog.Int("route", chunk+1),
			slog.Uint64("generation", gen),
		)
		return
	}

	r := &v.renderers[chunk]
	switch {
	case err == nil:
		r.State = domain.RendererOK
		r.Status = res.Status
		r.Path = res.Path
		r.DistanceMeters = res.DistanceMeters
		r.DurationSeconds = res.DurationSeconds
	case errors.Is(err, context.Canceled):
		r.State = domain.RendererCancelled
	default:
		r.State = domain.RendererFailed
		r.Status = errorStatus(err)
		if chunkCount == 1 {
			v.log.ErrorContext(ctx, "error fetching directions",
				slog.Int("trip", tripIndex+1),
				slog.String("status", r.Status),
				slog.Any("error", err),
			)
		} else {
			v.log.ErrorContext(ctx, "error fetching directions",
				slog.Int("trip", tripIndex+1),
				slog.Int("route", chunk+1),
				slog.String("status", r.Status),
				slog.Any("error", err),
			)
		}
	}
}

func errorStatus(err error) string {
	var se *ports.StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}
	return "UNKNOWN_ERROR"
}

// Wait blocks until every chunk request of the current selection has settled
// or ctx is done. It returns immediately when nothing is selected.
func (v *TripView) Wait(ctx context.Context) error {
	v.mu.Lock()
	done := v.done
	v.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Clear drops the selection and all renderers, cancelling in-flight requests.
func (v *TripView) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resetLocked()
	v.generation++
}

// resetLocked detaches the current renderers and cancels their requests.
// Callers must hold v.mu.
func (v *TripView) resetLocked() {
	if v.cancel != nil {
		v.cancel()
	}
	v.cancel = nil
	v.done = nil
	v.selected = nil
	v.trip = domain.Trip{}
	v.renderers = nil
}

// Snapshot returns a copy of the current map state.
func (v *TripView) Snapshot() domain.MapView {
	v.mu.Lock()
	defer v.mu.Unlock()

	view := domain.MapView{
		Generation: v.generation,
		Center:     domain.DefaultCenter,
		Zoom:       domain.DefaultZoom,
		Markers:    []domain.Marker{},
		Renderers:  make([]domain.Renderer, len(v.renderers)),
	}
	copy(view.Renderers, v.renderers)

	if v.selected == nil {
		return view
	}

	selected := *v.selected
	trip := v.trip
	color := v.color
	view.SelectedTrip = &selected
	view.Trip = &trip
	view.Color = &color
	view.Markers = buildMarkers(trip, color)

	return view
}

// buildMarkers pins every stop: a large green origin marker, then one
// trip-colored marker per remaining stop labelled from "Stop 0".
func buildMarkers(trip domain.Trip, color domain.Color) []domain.Marker {
	markers := make([]domain.Marker, 0, len(trip.Stops))
	for i, s := range trip.Stops {
		if i == 0 {
			markers = append(markers, domain.Marker{
				Position:  s.Coordinates(),
				FillColor: originMarkerColor,
				Scale:     originMarkerScale,
				Origin:    true,
			})
			continue
		}

		markers = append(markers, domain.Marker{
			Position:  s.Coordinates(),
			Label:     fmt.Sprintf("Stop %d", i-1),
			FillColor: color.CSS(),
			Scale:     stopMarkerScale,
		})
	}
	return markers
}
