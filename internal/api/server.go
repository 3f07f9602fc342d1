// Package api exposes the fuel finder over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/metrics"
	"github.com/UnknownOlympus/servo/internal/service"
	"github.com/julienschmidt/httprouter"
)

const (
	// DefaultRadiusKm is used when a cheapest query carries no radius.
	DefaultRadiusKm = 10.0
	// MinRadiusKm and MaxRadiusKm bound the radius accepted from clients.
	MinRadiusKm = 1.0
	MaxRadiusKm = 50.0
)

// Finder answers fuel station queries. *service.FuelService implements it.
type Finder interface {
	Nearest(ctx context.Context, user geo.GeoPoint) (*service.NearestResult, error)
	Cheapest(ctx context.Context, user geo.GeoPoint, radiusKm float64) (*service.CheapestResult, error)
}

// Config holds the HTTP surface settings.
type Config struct {
	CORSOrigin string  // Value of Access-Control-Allow-Origin
	RateLimit  float64 // Requests per second allowed per client IP, zero disables limiting
}

// Server routes HTTP requests to a Finder.
type Server struct {
	log     *slog.Logger
	finder  Finder
	metrics *metrics.Metrics
	limiter *clientLimiter
	cfg     Config
}

// NewServer creates a Server. An empty CORSOrigin allows any origin.
func NewServer(log *slog.Logger, finder Finder, metrics *metrics.Metrics, cfg Config) *Server {
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}

	return &Server{
		log:     log,
		finder:  finder,
		metrics: metrics,
		limiter: newClientLimiter(cfg.RateLimit),
		cfg:     cfg,
	}
}

// Routes registers the API endpoints and wraps them with the middleware chain:
//
//	GET /v1/nearest/:coords             nearest station to "<lat>,<lng>"
//	GET /v1/cheapest/:coords?radius=km  stations within radius ordered by price
//	GET /healthz                        liveness probe
func (s *Server) Routes() http.Handler {
	router := httprouter.New()

	router.Handler(http.MethodGet, "/v1/nearest/:coords", s.instrument("nearest", s.rateLimit(http.HandlerFunc(s.nearestHandler))))
	router.Handler(http.MethodGet, "/v1/cheapest/:coords", s.instrument("cheapest", s.rateLimit(http.HandlerFunc(s.cheapestHandler))))
	router.HandlerFunc(http.MethodGet, "/healthz", s.healthHandler)
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "not_found", "resource not found")
	})

	return sentryMiddleware(securityHeaders(s.cors(router)))
}
