package journey

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/models"
	"github.com/UnknownOlympus/servo/internal/repository"
)

// Cache stores journeys keyed by origin and destination coordinates.
type Cache interface {
	GetJourney(ctx context.Context, origin, destination string) (*models.Journey, error)
	SaveJourney(ctx context.Context, origin, destination string, journey models.Journey) error
}

// CachedProvider consults a Cache before delegating to the wrapped Provider.
// Cache failures are logged and never fail the lookup.
type CachedProvider struct {
	provider Provider
	cache    Cache
	log      *slog.Logger
}

// NewCachedProvider wraps provider with cache.
func NewCachedProvider(provider Provider, cache Cache, log *slog.Logger) *CachedProvider {
	return &CachedProvider{provider: provider, cache: cache, log: log}
}

// Journey returns the cached journey when present, otherwise asks the provider
// and stores a successful answer.
func (cp *CachedProvider) Journey(ctx context.Context, origin, destination geo.GeoPoint) (*models.Journey, error) {
	from, to := origin.String(), destination.String()

	cached, err := cp.cache.GetJourney(ctx, from, to)
	switch {
	case err == nil:
		cp.log.DebugContext(ctx, "Journey cache hit", "origin", from, "destination", to)
		return cached, nil
	case !errors.Is(err, repository.ErrNotFound):
		cp.log.WarnContext(ctx, "Journey cache lookup failed", "origin", from, "destination", to, "error", err)
	}

	journey, err := cp.provider.Journey(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if err = cp.cache.SaveJourney(ctx, from, to, *journey); err != nil {
		cp.log.WarnContext(ctx, "Failed to store journey in cache", "origin", from, "destination", to, "error", err)
	}

	return journey, nil
}
