package journey

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to query the
// Distance Matrix service for driving distance and duration.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Journey asks the Distance Matrix API for a driving route from origin to destination.
// Any element status other than "OK" (e.g. "ZERO_RESULTS", "NOT_FOUND") maps to ErrNoResults.
func (gp *GoogleProvider) Journey(ctx context.Context, origin, destination geo.GeoPoint) (*models.Journey, error) {
	gp.log.DebugContext(ctx, "Requesting journey from Google Maps", "origin", origin, "destination", destination)

	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origin.String()},
		Destinations: []string{destination.String()},
		Mode:         maps.TravelModeDriving,
		Language:     "en-US",
	}
	resp, err := gp.client.DistanceMatrix(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to query distance matrix: %w", err)
	}

	if resp == nil || len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 || resp.Rows[0].Elements[0] == nil {
		return nil, ErrNoResults
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != models.JourneyStatusOK {
		gp.log.DebugContext(ctx, "Google Maps returned no route", "status", element.Status)
		return nil, fmt.Errorf("%w: status %s", ErrNoResults, element.Status)
	}

	distanceText := element.Distance.HumanReadable
	if distanceText == "" {
		distanceText = formatDistance(element.Distance.Meters)
	}

	return &models.Journey{
		DistanceText:    distanceText,
		DurationText:    formatDuration(element.Duration),
		DistanceMeters:  element.Distance.Meters,
		DurationSeconds: int(element.Duration.Seconds()),
		Status:          element.Status,
	}, nil
}
