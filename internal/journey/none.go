package journey

import (
	"context"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/models"
)

// DisabledProvider never returns a journey. It is used when no routing backend is configured.
type DisabledProvider struct{}

// Journey always returns ErrNoResults.
func (DisabledProvider) Journey(_ context.Context, _, _ geo.GeoPoint) (*models.Journey, error) {
	return nil, ErrNoResults
}
