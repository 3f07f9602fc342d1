package journey

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/models"
)

// Provider is an interface that defines a method for estimating a driving journey.
// The Journey method takes a context and an origin and destination point,
// and returns the route estimate or an error if none is available.
type Provider interface {
	Journey(ctx context.Context, origin, destination geo.GeoPoint) (*models.Journey, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrNoResults is returned when the provider answered but has no route for the pair.
// Callers leave the travel fields of a facility absent in that case.
var ErrNoResults = errors.New("journey provider returned no results")
