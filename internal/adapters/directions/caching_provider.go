package directions

import (
	"context"
	"fmt"
	"log/slog"
	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/ports"
)

// CachingProvider serves directions from a RouteCache and falls back to the
// wrapped provider on a miss. Only successful results are cached.
type CachingProvider struct {
	next  ports.DirectionsProvider
	cache ports.RouteCache
	log   *slog.Logger
}

func NewCachingProvider(next ports.DirectionsProvider, c ports.RouteCache, logger *slog.Logger) *CachingProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingProvider{next: next, cache: c, log: logger}
}

func (p *CachingProvider) Route(ctx context.Context, req ports.DirectionsRequest) (ports.DirectionsResult, error) {
	key := cache.RequestKey(req)

	// Cache read failures fall through to the provider.
	if hit, ok, err := p.cache.Get(ctx, key); err != nil {
		p.log.WarnContext(ctx, "route cache read failed", slog.Any("error", err))
	} else if ok {
		return hit, nil
	}

	res, err := p.next.Route(ctx, req)
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("cached route: %w", err)
	}

	if err := p.cache.Put(ctx, key, res); err != nil {
		p.log.WarnContext(ctx, "route cache write failed", slog.Any("error", err))
	}

	return res, nil
}
