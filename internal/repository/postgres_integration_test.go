//go:build integration

package repository_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/servo/internal/models"
	"github.com/UnknownOlympus/servo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestJourneyCache_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := t.Context()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("servo"),
		postgres.WithUsername("servo"),
		postgres.WithPassword("servo"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, container.Terminate(ctx))
	}()

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := repository.Connect(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	repo := repository.NewRepository(pool, slog.Default())
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "schema creation must be idempotent")

	origin, destination := "-32.05,115.75", "-31.95,115.86"

	_, err = repo.GetJourney(ctx, origin, destination)
	require.ErrorIs(t, err, repository.ErrNotFound)

	first := models.Journey{DistanceText: "15.2 km", DurationText: "16 mins", DistanceMeters: 15200, DurationSeconds: 960, Status: "OK"}
	require.NoError(t, repo.SaveJourney(ctx, origin, destination, first))

	got, err := repo.GetJourney(ctx, origin, destination)
	require.NoError(t, err)
	assert.Equal(t, first, *got)

	updated := first
	updated.DurationText = "21 mins"
	updated.DurationSeconds = 1260
	require.NoError(t, repo.SaveJourney(ctx, origin, destination, updated))

	got, err = repo.GetJourney(ctx, origin, destination)
	require.NoError(t, err)
	assert.Equal(t, updated, *got)
}
