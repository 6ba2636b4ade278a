package directions

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRouteCache struct {
	mu      sync.Mutex
	entries map[string]ports.DirectionsResult
	getErr  error
	puts    int
}

func newMemoryRouteCache() *memoryRouteCache {
	return &memoryRouteCache{entries: make(map[string]ports.DirectionsResult)}
}

func (c *memoryRouteCache) Get(ctx context.Context, key string) (ports.DirectionsResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return ports.DirectionsResult{}, false, c.getErr
	}
	res, ok := c.entries[key]
	return res, ok, nil
}

func (c *memoryRouteCache) Put(ctx context.Context, key string, result ports.DirectionsResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = result
	c.puts++
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachingProviderServesHits(t *testing.T) {
	mock := NewMockDirectionsProvider()
	store := newMemoryRouteCache()
	p := NewCachingProvider(mock, store, quietLogger())

	req := ports.DirectionsRequest{Origin: nairobi, Destination: thika, Mode: ports.TravelModeDriving}

	first, err := p.Route(context.Background(), req)
	require.NoError(t, err)
	second, err := p.Route(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, mock.Requests(), 1)
	assert.Equal(t, 1, store.puts)
	assert.Contains(t, store.entries, cache.RequestKey(req))
}

func TestCachingProviderDoesNotCacheFailures(t *testing.T) {
	mock := NewMockDirectionsProvider()
	mock.FailOrigin(nairobi, "ZERO_RESULTS")
	store := newMemoryRouteCache()
	p := NewCachingProvider(mock, store, quietLogger())

	_, err := p.Route(context.Background(), ports.DirectionsRequest{Origin: nairobi, Destination: thika})

	var se *ports.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "ZERO_RESULTS", se.Status)
	assert.Zero(t, store.puts)
}

func TestCachingProviderFallsThroughOnReadError(t *testing.T) {
	mock := NewMockDirectionsProvider()
	store := newMemoryRouteCache()
	store.getErr = errors.New("connection reset")
	p := NewCachingProvider(mock, store, quietLogger())

	res, err := p.Route(context.Background(), ports.DirectionsRequest{
		Origin:      nairobi,
		Destination: thika,
		Waypoints:   []domain.Coordinates{ruiru},
	})
	require.NoError(t, err)
	assert.Len(t, res.Path, 3)
	assert.Len(t, mock.Requests(), 1)
}
