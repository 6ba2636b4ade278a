package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
	"trip-route-service/internal/adapters/directions"
	"trip-route-service/internal/adapters/repositories"
	"trip-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T, provider *directions.MockDirectionsProvider, trips ...domain.Trip) *TripView {
	t.Helper()
	return NewTripView(TripViewConfig{
		Trips:       repositories.NewMemoryTripRepository(trips),
		Provider:    provider,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Concurrency: 2,
	})
}

func waitSettled(t *testing.T, v *TripView) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, v.Wait(ctx))
}

func TestTripViewInitialState(t *testing.T) {
	v := newTestView(t, directions.NewMockDirectionsProvider(), makeTrip(1, 3))

	view := v.Snapshot()
	assert.Nil(t, view.SelectedTrip)
	assert.Nil(t, view.Trip)
	assert.Empty(t, view.Markers)
	assert.Empty(t, view.Renderers)
	assert.Equal(t, domain.DefaultCenter, view.Center)
	assert.Equal(t, domain.DefaultZoom, view.Zoom)
	assert.NoError(t, v.Wait(context.Background()))
}

func TestTripViewSelectSingleChunk(t *testing.T) {
	provider := directions.NewMockDirectionsProvider()
	trip := makeTrip(1, 10)
	v := newTestView(t, provider, trip, makeTrip(2, 4))

	require.NoError(t, v.Select(context.Background(), 0))
	waitSettled(t, v)

	reqs := provider.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Alternatives)
	assert.Len(t, reqs[0].Waypoints, 8)

	view := v.Snapshot()
	require.NotNil(t, view.SelectedTrip)
	assert.Equal(t, 0, *view.SelectedTrip)
	require.NotNil(t, view.Color)
	assert.Equal(t, 0.0, view.Color.Hue)

	require.Len(t, view.Renderers, 1)
	r := view.Renderers[0]
	assert.Equal(t, domain.RendererOK, r.State)
	assert.Equal(t, "OK", r.Status)
	assert.Equal(t, 5, r.StrokeWeight)
	assert.Equal(t, *view.Color, r.StrokeColor)
	assert.Len(t, r.Path, 10)
	assert.Equal(t, 9000, r.DistanceMeters)
}

func TestTripViewSelectIssuesOneRequestPerChunk(t *testing.T) {
	provider := directions.NewMockDirectionsProvider()
	v := newTestView(t, provider, makeTrip(1, 50))

	require.NoError(t, v.Select(context.Background(), 0))
	waitSettled(t, v)

	reqs := provider.Requests()
	require.Len(t, reqs, 3)
	for _, r := range reqs {
		assert.False(t, r.Alternatives)
		assert.LessOrEqual(t, len(r.Waypoints), MaxStopsPerRequest-2)
	}

	view := v.Snapshot()
	require.Len(t, view.Renderers, 3)
	for i, r := range view.Renderers {
		assert.Equal(t, i, r.ChunkIndex)
		assert.Equal(t, domain.RendererOK, r.State)
	}
}

func TestTripViewMarkers(t *testing.T) {
	trip := makeTrip(1, 4)
	v := newTestView(t, directions.NewMockDirectionsProvider(), makeTrip(2, 2), trip)

	require.NoError(t, v.Select(context.Background(), 1))
	waitSettled(t, v)

	markers := v.Snapshot().Markers
	require.Len(t, markers, 4)

	origin := markers[0]
	assert.True(t, origin.Origin)
	assert.Equal(t, "green", origin.FillColor)
	assert.Equal(t, 20, origin.Scale)
	assert.Empty(t, origin.Label)
	assert.Equal(t, trip.Stops[0].Coordinates(), origin.Position)

	for i, m := range markers[1:] {
		assert.False(t, m.Origin)
		assert.Equal(t, 7, m.Scale)
		assert.Equal(t, "hsl(180, 100%, 50%)", m.FillColor)
		assert.Equal(t, trip.Stops[i+1].Coordinates(), m.Position)
	}
	assert.Equal(t, "Stop 0", markers[1].Label)
	assert.Equal(t, "Stop 2", markers[3].Label)
}

func TestTripViewSwitchReplacesRenderers(t *testing.T) {
	provider := directions.NewMockDirectionsProvider()
	v := newTestView(t, provider, makeTrip(1, 50), makeTrip(2, 5))

	require.NoError(t, v.Select(context.Background(), 0))
	waitSettled(t, v)
	require.Len(t, v.Snapshot().Renderers, 3)

	require.NoError(t, v.Select(context.Background(), 1))
	waitSettled(t, v)

	view := v.Snapshot()
	require.Len(t, view.Renderers, 1)
	assert.Equal(t, 1, *view.SelectedTrip)
	assert.Len(t, view.Markers, 5)
	assert.Len(t, provider.Requests(), 4)
}

func TestTripViewDropsStaleResponses(t *testing.T) {
	provider := directions.NewMockDirectionsProvider()
	first := makeTrip(1, 6)
	second := makeTrip(2, 3)
	v := newTestView(t, provider, first, second)

	gate := make(chan struct{})
	provider.Hold(gate)

	require.NoError(t, v.Select(context.Background(), 0))
	require.Eventually(t, func() bool { return len(provider.Requests()) == 1 }, time.Second, 5*time.Millisecond)

	v.mu.Lock()
	staleDone := v.done
	v.mu.Unlock()

	provider.Hold(nil)
	require.NoError(t, v.Select(context.Background(), 1))
	waitSettled(t, v)

	close(gate)
	select {
	case <-staleDone:
	case <-time.After(5 * time.Second):
		t.Fatal("stale dispatch did not finish")
	}

	view := v.Snapshot()
	require.Len(t, view.Renderers, 1)
	assert.Equal(t, 1, *view.SelectedTrip)
	r := view.Renderers[0]
	assert.Equal(t, domain.RendererOK, r.State)
	require.Len(t, r.Path, 3)
	assert.Equal(t, second.Stops[0].Coordinates(), r.Path[0])
}

func TestTripViewPartialFailure(t *testing.T) {
	provider := directions.NewMockDirectionsProvider()
	trip := makeTrip(1, 50)
	provider.FailOrigin(trip.Stops[24].Coordinates(), "ZERO_RESULTS")
	v := newTestView(t, provider, trip)

	require.NoError(t, v.Select(context.Background(), 0))
	waitSettled(t, v)

	view := v.Snapshot()
	require.Len(t, view.Renderers, 3)
	assert.Equal(t, domain.RendererOK, view.Renderers[0].State)
	assert.Equal(t, domain.RendererFailed, view.Renderers[1].State)
	assert.Equal(t, "ZERO_RESULTS", view.Renderers[1].Status)
	assert.Empty(t, view.Renderers[1].Path)
	assert.Equal(t, domain.RendererOK, view.Renderers[2].State)
}

func TestTripViewSelectInvalidIndex(t *testing.T) {
	provider := directions.NewMockDirectionsProvider()
	v := newTestView(t, provider, makeTrip(1, 3))

	for _, idx := range []int{-1, 1} {
		err := v.Select(context.Background(), idx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "index %d", idx)
	}
	assert.Empty(t, provider.Requests())
	assert.Nil(t, v.Snapshot().SelectedTrip)
}

func TestTripViewSelectEmptyTrip(t *testing.T) {
	provider := directions.NewMockDirectionsProvider()
	v := newTestView(t, provider, makeTrip(1, 0))

	err := v.Select(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, provider.Requests())
}

func TestTripViewClear(t *testing.T) {
	provider := directions.NewMockDirectionsProvider()
	v := newTestView(t, provider, makeTrip(1, 5))

	require.NoError(t, v.Select(context.Background(), 0))
	waitSettled(t, v)
	before := v.Snapshot().Generation

	v.Clear()

	view := v.Snapshot()
	assert.Nil(t, view.SelectedTrip)
	assert.Empty(t, view.Renderers)
	assert.Empty(t, view.Markers)
	assert.Greater(t, view.Generation, before)
}

func TestTripViewWaitHonoursContext(t *testing.T) {
	provider := directions.NewMockDirectionsProvider()
	gate := make(chan struct{})
	defer close(gate)
	provider.Hold(gate)
	v := newTestView(t, provider, makeTrip(1, 3))

	require.NoError(t, v.Select(context.Background(), 0))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, v.Wait(ctx), context.DeadlineExceeded)

	view := v.Snapshot()
	require.Len(t, view.Renderers, 1)
	assert.Equal(t, domain.RendererPending, view.Renderers[0].State)
}
