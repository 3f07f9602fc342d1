// Package feed loads fuel stations and their prices from the upstream price feed.
package feed

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/servo/internal/models"
)

// Source is an interface that returns the current set of priced fuel stations.
type Source interface {
	Fetch(ctx context.Context) ([]models.Facility, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for feed sources.
var (
	ErrFeedStatus = errors.New("fuel feed returned unexpected status")
	ErrFeedEmpty  = errors.New("fuel feed returned no stations")
)
