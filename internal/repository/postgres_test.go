package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/servo/internal/models"
	"github.com/UnknownOlympus/servo/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getJourneyQuery = `
	SELECT distance_text, duration_text, distance_meters, duration_seconds, status
	FROM journey_cache
	WHERE origin = $1 AND destination = $2;
`

var journeyColumns = []string{"distance_text", "duration_text", "distance_meters", "duration_seconds", "status"}

func TestGetJourney(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	origin, destination := "-32.05,115.75", "-31.95,115.86"

	t.Run("error - query cached journey", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getJourneyQuery)).
			WithArgs(origin, destination).
			WillReturnError(assert.AnError)

		journey, err := repo.GetJourney(ctx, origin, destination)

		require.Nil(t, journey)
		require.ErrorContains(t, err, "failed to query cached journey")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan cached journey", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getJourneyQuery)).
			WithArgs(origin, destination).
			WillReturnRows(pgxmock.NewRows(journeyColumns).AddRow("15.2 km", "16 mins", "invalid", 960, "OK"))

		journey, err := repo.GetJourney(ctx, origin, destination)

		require.Nil(t, journey)
		require.ErrorContains(t, err, "failed to query cached journey")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss - not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getJourneyQuery)).
			WithArgs(origin, destination).
			WillReturnRows(pgxmock.NewRows(journeyColumns))

		journey, err := repo.GetJourney(ctx, origin, destination)

		require.Nil(t, journey)
		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - cached journey", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getJourneyQuery)).
			WithArgs(origin, destination).
			WillReturnRows(pgxmock.NewRows(journeyColumns).AddRow("15.2 km", "16 mins", 15200, 960, "OK"))

		journey, err := repo.GetJourney(ctx, origin, destination)

		require.NoError(t, err)
		assert.Equal(t, &models.Journey{
			DistanceText:    "15.2 km",
			DurationText:    "16 mins",
			DistanceMeters:  15200,
			DurationSeconds: 960,
			Status:          "OK",
		}, journey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveJourney(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	origin, destination := "-32.05,115.75", "-31.95,115.86"
	journey := models.Journey{
		DistanceText:    "15.2 km",
		DurationText:    "16 mins",
		DistanceMeters:  15200,
		DurationSeconds: 960,
		Status:          "OK",
	}
	query := `
		INSERT INTO journey_cache
			(origin, destination, distance_text, duration_text, distance_meters, duration_seconds, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	t.Run("error - save journey", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(origin, destination, "15.2 km", "16 mins", 15200, 960, "OK").
			WillReturnError(assert.AnError)

		err = repo.SaveJourney(ctx, origin, destination, journey)

		require.ErrorContains(t, err, "failed to save journey")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - save journey", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(origin, destination, "15.2 km", "16 mins", 15200, 960, "OK").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err = repo.SaveJourney(ctx, origin, destination, journey)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("error - create table", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS journey_cache").WillReturnError(assert.AnError)

		err = repository.NewRepository(mock, logger).EnsureSchema(ctx)

		require.ErrorContains(t, err, "failed to create journey cache table")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - create table", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS journey_cache").
			WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

		err = repository.NewRepository(mock, logger).EnsureSchema(ctx)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
