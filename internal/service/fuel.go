package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/servo/internal/feed"
	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/journey"
	"github.com/UnknownOlympus/servo/internal/metrics"
	"github.com/UnknownOlympus/servo/internal/models"
	"github.com/UnknownOlympus/servo/internal/report"
	"github.com/UnknownOlympus/servo/internal/selector"
)

const (
	defaultEnrichTop = 3
	defaultWorkers   = 3
)

var (
	// ErrNoFacilities is returned when no facility matches the request.
	ErrNoFacilities = errors.New("no facilities found")
	// ErrFeedUnavailable wraps failures of the price feed.
	ErrFeedUnavailable = errors.New("fuel price feed unavailable")
)

// Options tunes how FuelService ranks and enriches facilities.
type Options struct {
	Formula   geo.Formula // Formula used to annotate and rank facilities (spherical when nil)
	Precise   bool        // Precise recomputes returned distances on the WGS-84 ellipsoid
	EnrichTop int         // EnrichTop is how many cheapest candidates get journey details
	Workers   int         // Workers is the size of the enrichment worker pool
}

// NearestResult is the answer to a nearest-station query.
type NearestResult struct {
	User     geo.GeoPoint    `json:"user"`
	Facility models.Facility `json:"facility"`
}

// CheapestResult is the answer to a cheapest-station query.
// Facilities are ordered by ascending price; only the first EnrichTop carry travel details.
type CheapestResult struct {
	User       geo.GeoPoint      `json:"user"`
	RadiusKm   float64           `json:"radiusKm"`
	Facilities []models.Facility `json:"facilities"`
}

// FuelService answers nearest and cheapest queries against the price feed,
// enriching the chosen facilities with driving distance and duration.
type FuelService struct {
	log          *slog.Logger     // Logger for logging service activities
	source       feed.Source      // Source of facilities with prices
	provider     journey.Provider // Provider of driving journeys
	providerName string           // Name of the provider for metrics labeling
	metrics      *metrics.Metrics // Metrics for tracking service performance
	formula      geo.Formula
	precise      bool
	enrichTop    int
	numWorkers   int
}

// NewFuelService creates a new instance of FuelService.
// Zero values in opts fall back to a spherical formula, three enriched candidates and three workers.
func NewFuelService(
	log *slog.Logger,
	source feed.Source,
	provider journey.Provider,
	providerName string,
	metrics *metrics.Metrics,
	opts Options,
) *FuelService {
	if opts.Formula == nil {
		opts.Formula = geo.Spherical()
	}
	if opts.EnrichTop <= 0 {
		opts.EnrichTop = defaultEnrichTop
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}

	return &FuelService{
		log:          log,
		source:       source,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		formula:      opts.Formula,
		precise:      opts.Precise,
		enrichTop:    opts.EnrichTop,
		numWorkers:   opts.Workers,
	}
}

// Nearest returns the facility closest to user, enriched with journey details when available.
func (fs *FuelService) Nearest(ctx context.Context, user geo.GeoPoint) (*NearestResult, error) {
	facilities, err := fs.annotated(ctx, user)
	if err != nil {
		return nil, err
	}

	nearest, ok := selector.Nearest(facilities)
	if !ok {
		return nil, ErrNoFacilities
	}

	enriched := fs.refine(ctx, user, fs.enrich(ctx, user, []models.Facility{nearest}))

	return &NearestResult{User: user, Facility: enriched[0]}, nil
}

// Cheapest returns the facilities within radiusKm of user ordered by price.
// The first EnrichTop of them are enriched concurrently; a failed lookup leaves
// that facility without travel details.
func (fs *FuelService) Cheapest(ctx context.Context, user geo.GeoPoint, radiusKm float64) (*CheapestResult, error) {
	facilities, err := fs.annotated(ctx, user)
	if err != nil {
		return nil, err
	}

	within, err := selector.WithinRadius(facilities, radiusKm)
	if err != nil {
		return nil, err
	}
	if len(within) == 0 {
		return nil, ErrNoFacilities
	}

	ranked := selector.Cheapest(within, len(within))
	top := min(fs.enrichTop, len(ranked))
	copy(ranked, fs.enrich(ctx, user, ranked[:top]))

	return &CheapestResult{User: user, RadiusKm: radiusKm, Facilities: fs.refine(ctx, user, ranked)}, nil
}

// annotated fetches the feed and attaches the distance to user to every facility.
func (fs *FuelService) annotated(ctx context.Context, user geo.GeoPoint) ([]models.Facility, error) {
	startTime := time.Now()
	facilities, err := fs.source.Fetch(ctx)
	fs.metrics.FeedSeconds.Observe(time.Since(startTime).Seconds())
	if err != nil {
		fs.metrics.FeedErrors.Inc()
		report.Error(err, map[string]string{"component": "feed"})
		return nil, fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
	}

	annotated, err := selector.AnnotateDistances(user, facilities, fs.formula)
	if err != nil {
		fs.log.WarnContext(ctx, "Some facilities have no distance", "user", user, "error", err)
	}

	// A fallback formula answers failed pairs with another method.
	method := fs.formula.Method()
	for _, facility := range annotated {
		if facility.DistanceTo == nil || facility.DistanceMethod != method {
			fs.metrics.DistanceFailures.WithLabelValues(string(method)).Inc()
		}
	}

	return annotated, nil
}

// enrich looks up journeys from each facility to user with a pool of workers
// and returns a copy of facilities in the same order.
func (fs *FuelService) enrich(ctx context.Context, user geo.GeoPoint, facilities []models.Facility) []models.Facility {
	out := make([]models.Facility, len(facilities))
	copy(out, facilities)
	if len(out) == 0 {
		return out
	}

	numWorkers := min(fs.numWorkers, len(out))
	fs.log.DebugContext(ctx, "Starting enrichment worker pool", "jobs", len(out), "num_workers", numWorkers)

	jobs := make(chan int, len(out))
	var wgr sync.WaitGroup

	for i := 1; i <= numWorkers; i++ {
		wgr.Add(1)
		go fs.worker(ctx, i, &wgr, user, out, jobs)
	}

	for idx := range out {
		jobs <- idx
	}
	close(jobs)

	wgr.Wait()

	return out
}

// worker enriches the facilities whose indices arrive on jobs. Each index is owned by
// exactly one worker, so writes to out do not overlap.
func (fs *FuelService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	user geo.GeoPoint,
	out []models.Facility,
	jobs <-chan int,
) {
	defer wg.Done()
	for job := range jobs {
		fs.metrics.ActiveWorkers.Inc()
		facility := out[job]

		startTime := time.Now()
		found, err := fs.provider.Journey(ctx, facility.Point, user)
		fs.metrics.JourneySeconds.WithLabelValues(fs.providerName).Observe(time.Since(startTime).Seconds())

		switch {
		case errors.Is(err, journey.ErrNoResults):
			fs.metrics.JourneyLookups.WithLabelValues("no_results").Inc()
			fs.log.DebugContext(ctx, "No journey for facility", "worker", idx, "facility", facility.TradingName)
		case err != nil:
			fs.metrics.JourneyLookups.WithLabelValues("failure").Inc()
			fs.log.ErrorContext(ctx, "Failed to look up journey",
				"worker", idx,
				"facility", facility.TradingName,
				"error", err,
			)
			report.Error(err, map[string]string{"component": "journey", "provider": fs.providerName})
		default:
			fs.metrics.JourneyLookups.WithLabelValues("success").Inc()
			facility = facility.WithJourney(*found)
		}

		out[job] = facility
		fs.metrics.ActiveWorkers.Dec()
	}
}

// refine recomputes the distances of facilities on the WGS-84 ellipsoid when the
// service runs in precise mode. A facility keeps its existing distance when the
// iteration fails.
func (fs *FuelService) refine(ctx context.Context, user geo.GeoPoint, facilities []models.Facility) []models.Facility {
	if !fs.precise {
		return facilities
	}

	for i, facility := range facilities {
		meters, err := geo.VincentyMeters(user, facility.Point, geo.WGS84)
		if err != nil {
			fs.metrics.DistanceFailures.WithLabelValues(string(geo.MethodEllipsoidal)).Inc()
			fs.log.WarnContext(ctx, "Keeping approximate distance", "facility", facility.TradingName, "error", err)
			continue
		}
		facilities[i] = facility.WithDistance(meters/1000, geo.MethodEllipsoidal)
	}

	return facilities
}
