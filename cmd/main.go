package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/servo/internal/api"
	"github.com/UnknownOlympus/servo/internal/config"
	"github.com/UnknownOlympus/servo/internal/feed"
	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/journey"
	"github.com/UnknownOlympus/servo/internal/metrics"
	"github.com/UnknownOlympus/servo/internal/report"
	"github.com/UnknownOlympus/servo/internal/repository"
	"github.com/UnknownOlympus/servo/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	if err := report.Setup(cfg.SentryDSN, cfg.Env, version); err != nil {
		logger.ErrorContext(ctx, "Failed to initialize error reporting", "error", err)
	}
	defer report.Flush()

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	formula, err := geo.FormulaByName(cfg.Formula)
	if err != nil {
		log.Fatalf("Failed to select distance formula: %v", err)
	}

	// Create journey provider using factory pattern based on configuration.
	provider, err := journey.NewProvider(journey.ProviderConfig{
		Type:      journey.ProviderType(cfg.Journey.Provider),
		APIKey:    cfg.Journey.APIKey,
		BaseURL:   cfg.Journey.BaseURL,
		RateLimit: cfg.Journey.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create journey provider: %v", err)
	}
	logger.InfoContext(ctx, "Journey provider initialized", "type", cfg.Journey.Provider)

	// The journey cache is optional and only used when a database is configured.
	var dtb *pgxpool.Pool
	if cfg.Database.Host != "" {
		dtb, err = repository.NewDatabase(
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer dtb.Close()

		repo := repository.NewRepository(dtb, logger)
		if err = repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare journey cache: %v", err)
		}
		provider = journey.NewCachedProvider(provider, repo, logger)
		logger.InfoContext(ctx, "Journey cache enabled", "host", cfg.Database.Host)
	}

	source := feed.NewCachedSource(feed.NewFuelWatch(feed.FuelWatchConfig{
		BaseURL: cfg.Feed.URL,
		Product: cfg.Feed.Product,
		Region:  cfg.Feed.Region,
	}, logger), cfg.Feed.TTL)

	fuelService := service.NewFuelService(logger, source, provider, cfg.Journey.Provider, appMetrics, service.Options{
		Formula:   formula,
		Precise:   cfg.Precise,
		EnrichTop: cfg.EnrichTop,
		Workers:   cfg.Workers,
	})

	apiServer := api.NewServer(logger, fuelService, appMetrics, api.Config{
		CORSOrigin: cfg.CORSOrigin,
		RateLimit:  cfg.RateLimit,
	})

	readTimeout := 5
	writeTimeout := 30
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      apiServer.Routes(),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	// Run the api and monitoring servers until a signal arrives or one of them fails.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return startMonitoringServer(groupCtx, logger, reg, dtb, cfg.HealthPort)
	})
	group.Go(func() error {
		logger.InfoContext(groupCtx, "Starting api server", "port", cfg.Port)
		return serve(groupCtx, server)
	})

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	if err = group.Wait(); err != nil {
		logger.ErrorContext(ctx, "Server failed", "error", err)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// serve runs server until ctx is canceled and then shuts it down gracefully.
func serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	case <-ctx.Done():
	}

	shutdownTimeout := 10
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown %s: %w", server.Addr, err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// startMonitoringServer starts an HTTP server that provides health check and metrics endpoints.
// It listens on the specified port until ctx is canceled.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - dtb: A pgxpool connector for database methods (ping), nil when the journey cache is disabled
// - port: The port number on which the server will listen.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	port int,
) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(req.Context(), "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if dtb != nil {
			if err := dtb.Ping(req.Context()); err != nil {
				status, body = http.StatusServiceUnavailable, "DB ping failed"
			}
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(req.Context(), "failed to write reply", "error", err)
		}

		log.DebugContext(req.Context(), "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	return serve(ctx, server)
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
