package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the fuel finder service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the public API server.
// - HealthPort: The port for the monitoring server (/healthz, /metrics).
// - Journey: Settings for the driving distance provider.
// - Feed: Settings for the fuel price feed.
// - Formula: The distance formula used for ranking (spherical, ellipsoidal).
// - Precise: Whether returned distances are recomputed on the WGS-84 ellipsoid.
// - EnrichTop: How many cheapest candidates get journey details.
// - Workers: The number of concurrent workers for journey lookups.
// - RateLimit: Requests per second allowed per client IP.
// - CORSOrigin: The value of Access-Control-Allow-Origin.
// - SentryDSN: Where unexpected errors are reported, empty disables reporting.
// - Database: Configuration for the optional PostgreSQL journey cache.
type Config struct {
	Env        string
	Port       int
	HealthPort int
	Journey    JourneyConfig
	Feed       FeedConfig
	Formula    string
	Precise    bool
	EnrichTop  int
	Workers    int
	RateLimit  float64
	CORSOrigin string
	SentryDSN  string
	Database   PostgresConfig
}

// JourneyConfig selects and tunes the journey provider.
type JourneyConfig struct {
	Provider  string // Provider is google, osrm or none.
	APIKey    string // APIKey is required for the google provider.
	BaseURL   string // BaseURL overrides the OSRM server.
	RateLimit int    // RateLimit is the provider request rate per second.
}

// FeedConfig describes the fuel price feed query.
type FeedConfig struct {
	URL     string
	Product string
	Region  string
	TTL     time.Duration // TTL is how long a fetched feed is reused.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
// The journey cache is enabled only when Host is set.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad reads the configuration from the environment (and a .env file when present).
// It panics when a numeric or duration value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("SERVO_PORT", "5000"))
	if err != nil {
		panic("failed to parse port for api server from configuration")
	}

	healthPort, err := strconv.Atoi(setDefaultEnv("SERVO_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	journeyRate, err := strconv.Atoi(setDefaultEnv("SERVO_JOURNEY_RATE", "10"))
	if err != nil {
		panic("failed to parse journey rate limit from configuration, must be an integer")
	}

	enrichTop, err := strconv.Atoi(setDefaultEnv("SERVO_ENRICH_TOP", "3"))
	if err != nil {
		panic("failed to parse enrich top from configuration, must be an integer")
	}

	workers, err := strconv.Atoi(setDefaultEnv("SERVO_WORKERS", "3"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer")
	}

	feedTTL, err := time.ParseDuration(setDefaultEnv("SERVO_FEED_TTL", "10m"))
	if err != nil {
		panic("failed to parse feed ttl from configuration")
	}

	rateLimit, err := strconv.ParseFloat(setDefaultEnv("SERVO_RATE_LIMIT", "5"), 64)
	if err != nil {
		panic("failed to parse rate limit from configuration")
	}

	precise, err := strconv.ParseBool(setDefaultEnv("SERVO_PRECISE", "false"))
	if err != nil {
		panic("failed to parse precise flag from configuration, must be a boolean")
	}

	return &Config{
		Env:        setDefaultEnv("SERVO_ENV", "production"),
		Port:       port,
		HealthPort: healthPort,
		Journey: JourneyConfig{
			Provider:  setDefaultEnv("SERVO_JOURNEY_PROVIDER", "google"),
			APIKey:    os.Getenv("SERVO_JOURNEY_KEY"),
			BaseURL:   os.Getenv("SERVO_JOURNEY_URL"),
			RateLimit: journeyRate,
		},
		Feed: FeedConfig{
			URL:     os.Getenv("SERVO_FEED_URL"),
			Product: os.Getenv("SERVO_FEED_PRODUCT"),
			Region:  os.Getenv("SERVO_FEED_REGION"),
			TTL:     feedTTL,
		},
		Formula:    setDefaultEnv("SERVO_FORMULA", "spherical"),
		Precise:    precise,
		EnrichTop:  enrichTop,
		Workers:    workers,
		RateLimit:  rateLimit,
		CORSOrigin: setDefaultEnv("SERVO_CORS_ORIGIN", "*"),
		SentryDSN:  os.Getenv("SENTRY_DSN"),
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     setDefaultEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
