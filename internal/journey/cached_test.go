package journey_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/servo/internal/journey"
	"github.com/UnknownOlympus/servo/internal/models"
	"github.com/UnknownOlympus/servo/internal/repository"
	"github.com/UnknownOlympus/servo/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedProvider_Journey(t *testing.T) {
	ctx := t.Context()
	from, to := station.String(), user.String()
	sample := models.Journey{
		DistanceText:    "15.9 km",
		DurationText:    "16 mins",
		DistanceMeters:  15912,
		DurationSeconds: 980,
		Status:          models.JourneyStatusOK,
	}

	t.Run("cache hit skips provider", func(t *testing.T) {
		cache := mocks.NewCache(t)
		provider := mocks.NewProvider(t)
		cached := journey.NewCachedProvider(provider, cache, slog.Default())

		cache.On("GetJourney", ctx, from, to).Return(&sample, nil).Once()

		got, err := cached.Journey(ctx, station, user)

		require.NoError(t, err)
		assert.Equal(t, sample, *got)
		provider.AssertNotCalled(t, "Journey")
	})

	t.Run("cache miss stores provider answer", func(t *testing.T) {
		cache := mocks.NewCache(t)
		provider := mocks.NewProvider(t)
		cached := journey.NewCachedProvider(provider, cache, slog.Default())

		cache.On("GetJourney", ctx, from, to).Return(nil, repository.ErrNotFound).Once()
		provider.On("Journey", ctx, station, user).Return(&sample, nil).Once()
		cache.On("SaveJourney", ctx, from, to, sample).Return(nil).Once()

		got, err := cached.Journey(ctx, station, user)

		require.NoError(t, err)
		assert.Equal(t, sample, *got)
	})

	t.Run("cache failures do not fail the lookup", func(t *testing.T) {
		cache := mocks.NewCache(t)
		provider := mocks.NewProvider(t)
		cached := journey.NewCachedProvider(provider, cache, slog.Default())

		cache.On("GetJourney", ctx, from, to).Return(nil, assert.AnError).Once()
		provider.On("Journey", ctx, station, user).Return(&sample, nil).Once()
		cache.On("SaveJourney", ctx, from, to, sample).Return(assert.AnError).Once()

		got, err := cached.Journey(ctx, station, user)

		require.NoError(t, err)
		assert.Equal(t, sample, *got)
	})

	t.Run("provider errors are not cached", func(t *testing.T) {
		cache := mocks.NewCache(t)
		provider := mocks.NewProvider(t)
		cached := journey.NewCachedProvider(provider, cache, slog.Default())

		cache.On("GetJourney", ctx, from, to).Return(nil, repository.ErrNotFound).Once()
		provider.On("Journey", ctx, station, user).Return(nil, journey.ErrNoResults).Once()

		got, err := cached.Journey(ctx, station, user)

		require.ErrorIs(t, err, journey.ErrNoResults)
		require.Nil(t, got)
		cache.AssertNotCalled(t, "SaveJourney")
	})
}
