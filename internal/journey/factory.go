package journey

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of journey provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents the Google Maps Distance Matrix API.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeOSRM represents an OSRM routing server.
	ProviderTypeOSRM ProviderType = "osrm"
	// ProviderTypeNone disables journey enrichment.
	ProviderTypeNone ProviderType = "none"
)

// ProviderConfig holds configuration for creating a journey provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (used by Google provider)
	BaseURL   string       // Base URL (used by OSRM provider, defaults to the public server)
	RateLimit int          // Rate limit for requests per second
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a journey provider based on the provided configuration.
//
// Supported provider types:
// - "google": Google Maps Distance Matrix API (requires API key)
// - "osrm": OSRM route service (no API key)
// - "none": enrichment disabled
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeOSRM:
		return newOSRMProvider(config), nil
	case ProviderTypeNone:
		return DisabledProvider{}, nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Maps journey provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

// newOSRMProvider creates an OSRM journey provider.
func newOSRMProvider(config ProviderConfig) Provider {
	if config.RateLimit <= 0 {
		config.RateLimit = 1
		config.Logger.Warn("Rate limit for OSRM API not set, set a default value", "value", config.RateLimit)
	}

	return NewOSRMProvider(config.BaseURL, config.RateLimit, config.Logger)
}
