package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests         *prometheus.CounterVec
	RequestSeconds   *prometheus.HistogramVec
	FeedSeconds      prometheus.Histogram
	FeedErrors       prometheus.Counter
	JourneySeconds   *prometheus.HistogramVec
	JourneyLookups   *prometheus.CounterVec
	DistanceFailures *prometheus.CounterVec
	ActiveWorkers    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "servo_http_requests_total",
			Help: "Total number of API requests by route and status code.",
		}, []string{"route", "code"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "servo_http_request_duration_seconds",
			Help:    "Duration of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		FeedSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "servo_feed_fetch_duration_seconds",
			Help:    "Duration of fuel feed fetches, including cache hits.",
			Buckets: prometheus.DefBuckets,
		}),
		FeedErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "servo_feed_errors_total",
			Help: "Total number of failed fuel feed fetches.",
		}),
		JourneySeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "servo_journey_request_duration_seconds",
			Help:    "Duration of requests to the journey provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		JourneyLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "servo_journey_lookups_total",
			Help: "Total number of journey lookups by outcome (success, no_results, failure).",
		}, []string{"status"}),
		DistanceFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "servo_distance_failures_total",
			Help: "Facilities whose distance could not be computed with the configured formula.",
		}, []string{"method"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "servo_active_enrichment_workers",
			Help: "Current number of workers enriching facilities with journey information.",
		}),
	}
}
