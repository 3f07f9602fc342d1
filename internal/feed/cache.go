package feed

import (
	"context"
	"sync"
	"time"

	"github.com/UnknownOlympus/servo/internal/models"
)

// CachedSource keeps the last successful fetch of a Source for a fixed TTL.
// FuelWatch publishes prices once a day.
type CachedSource struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	fetchedAt time.Time
	cached    []models.Facility
}

// NewCachedSource wraps source with a TTL cache. A non-positive ttl disables caching.
func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, ttl: ttl, now: time.Now}
}

// Fetch returns the cached facilities while they are fresh, otherwise fetches again.
// Concurrent callers wait for a single upstream fetch. A failed fetch is not cached.
// The returned slice is shared and must be treated as read-only.
func (cs *CachedSource) Fetch(ctx context.Context) ([]models.Facility, error) {
	if cs.ttl <= 0 {
		return cs.source.Fetch(ctx)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.cached != nil && cs.now().Sub(cs.fetchedAt) < cs.ttl {
		return cs.cached, nil
	}

	facilities, err := cs.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	cs.cached = facilities
	cs.fetchedAt = cs.now()

	return facilities, nil
}
