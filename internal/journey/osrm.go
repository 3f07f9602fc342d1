package journey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/models"
	"golang.org/x/time/rate"
)

// OSRMBaseURL is the public OSRM demo server.
const OSRMBaseURL = "https://router.project-osrm.org"

// OSRMProvider estimates journeys with the OSRM route service.
// The public demo server allows about one request per second.
type OSRMProvider struct {
	client    HTTPClient    // HTTP client for making requests
	baseURL   string        // Base URL for the OSRM API
	log       *slog.Logger  // Logger for logging operations
	limiter   *rate.Limiter // Rate limiter
	userAgent string
}

// ErrOSRMInvalidResponse is returned when OSRM answers with an unusable body.
var ErrOSRMInvalidResponse = errors.New("osrm API returned invalid response")

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

// NewOSRMProvider creates a new OSRM journey provider.
func NewOSRMProvider(baseURL string, rateLimit int, log *slog.Logger) *OSRMProvider {
	const timeout = 10

	return NewOSRMProviderWithClient(
		&http.Client{Timeout: timeout * time.Second},
		baseURL,
		rate.NewLimiter(rate.Limit(rateLimit), max(rateLimit, 1)),
		log,
	)
}

// NewOSRMProviderWithClient allows injecting custom HTTP client and limiter.
func NewOSRMProviderWithClient(client HTTPClient, baseURL string, limiter *rate.Limiter, log *slog.Logger) *OSRMProvider {
	if baseURL == "" {
		baseURL = OSRMBaseURL
	}

	return &OSRMProvider{
		client:    client,
		baseURL:   baseURL,
		log:       log,
		limiter:   limiter,
		userAgent: "Servo-Fuel-Finder/1.0 (https://github.com/UnknownOlympus/servo)",
	}
}

// Journey requests a driving route from origin to destination.
// OSRM codes other than "Ok" (e.g. "NoRoute", "NoSegment") map to ErrNoResults.
func (op *OSRMProvider) Journey(ctx context.Context, origin, destination geo.GeoPoint) (*models.Journey, error) {
	if err := op.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	// OSRM expects lng,lat pairs.
	path := fmt.Sprintf("/route/v1/driving/%v,%v;%v,%v",
		origin.Lng(), origin.Lat(), destination.Lng(), destination.Lat())
	reqURL, err := url.Parse(op.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	query := reqURL.Query()
	query.Set("overview", "false")
	query.Set("alternatives", "false")
	reqURL.RawQuery = query.Encode()

	op.log.DebugContext(ctx, "OSRM request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", op.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute journey request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result osrmResponse
	if err = json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("osrm API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: %w", ErrOSRMInvalidResponse, err)
	}

	// OSRM answers 400 with a code for routing failures, so inspect the code first.
	if result.Code != "Ok" {
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("osrm API returned status %d: %s", resp.StatusCode, result.Message)
		}
		op.log.DebugContext(ctx, "OSRM returned no route", "code", result.Code, "message", result.Message)
		return nil, fmt.Errorf("%w: code %s", ErrNoResults, result.Code)
	}

	if len(result.Routes) == 0 {
		return nil, ErrNoResults
	}

	route := result.Routes[0]
	if route.Distance < 0 || route.Duration < 0 {
		return nil, fmt.Errorf("%w: negative distance or duration", ErrOSRMInvalidResponse)
	}

	meters := int(math.Round(route.Distance))
	seconds := int(math.Round(route.Duration))

	return &models.Journey{
		DistanceText:    formatDistance(meters),
		DurationText:    formatDuration(time.Duration(seconds) * time.Second),
		DistanceMeters:  meters,
		DurationSeconds: seconds,
		Status:          models.JourneyStatusOK,
	}, nil
}
