package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/UnknownOlympus/servo/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDatabase opens a pgx connection pool and verifies it with a ping.
func NewDatabase(host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", user, password, net.JoinHostPort(host, port), name)

	return Connect(context.Background(), dsn)
}

// Connect opens a pgx connection pool for the given DSN and pings it.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the journey cache table if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS journey_cache (
			origin           TEXT        NOT NULL,
			destination      TEXT        NOT NULL,
			distance_text    TEXT        NOT NULL,
			duration_text    TEXT        NOT NULL,
			distance_meters  INTEGER     NOT NULL,
			duration_seconds INTEGER     NOT NULL,
			status           TEXT        NOT NULL,
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (origin, destination)
		);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create journey cache table: %w", err)
	}

	return nil
}

// GetJourney returns the cached journey from origin to destination.
// It returns ErrNotFound when the pair has not been cached.
func (r *Repository) GetJourney(ctx context.Context, origin, destination string) (*models.Journey, error) {
	query := `
		SELECT distance_text, duration_text, distance_meters, duration_seconds, status
		FROM journey_cache
		WHERE origin = $1 AND destination = $2;
	`

	var journey models.Journey
	err := r.db.QueryRow(ctx, query, origin, destination).Scan(
		&journey.DistanceText,
		&journey.DurationText,
		&journey.DistanceMeters,
		&journey.DurationSeconds,
		&journey.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cached journey: %w", err)
	}

	r.log.DebugContext(ctx, "Cached journey found", "origin", origin, "destination", destination)

	return &journey, nil
}

// SaveJourney inserts or refreshes the cached journey from origin to destination.
func (r *Repository) SaveJourney(ctx context.Context, origin, destination string, journey models.Journey) error {
	query := `
		INSERT INTO journey_cache
			(origin, destination, distance_text, duration_text, distance_meters, duration_seconds, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (origin, destination) DO UPDATE
		SET
			distance_text = EXCLUDED.distance_text,
			duration_text = EXCLUDED.duration_text,
			distance_meters = EXCLUDED.distance_meters,
			duration_seconds = EXCLUDED.duration_seconds,
			status = EXCLUDED.status,
			updated_at = now();
	`

	_, err := r.db.Exec(ctx, query,
		origin,
		destination,
		journey.DistanceText,
		journey.DurationText,
		journey.DistanceMeters,
		journey.DurationSeconds,
		journey.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to save journey: %w", err)
	}

	return nil
}
