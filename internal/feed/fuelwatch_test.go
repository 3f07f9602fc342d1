package feed_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/servo/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, body string) *mockHTTPClient {
	return &mockHTTPClient{
		doFunc: func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewBufferString(body)),
			}, nil
		},
	}
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>FuelWatch Prices For Metro</title>
    <item>
      <title>172.9: Vibe Kwinana</title>
      <brand>Vibe</brand>
      <date>2024-05-01</date>
      <price>172.9</price>
      <trading-name>Vibe Kwinana</trading-name>
      <location>KWINANA</location>
      <address>2 Kwinana Beach Rd</address>
      <phone>(08) 9999 0000</phone>
      <latitude>-32.236</latitude>
      <longitude>115.77</longitude>
      <site-features>, Open 24 hours</site-features>
    </item>
    <item>
      <brand>Caltex</brand>
      <price>not-a-price</price>
      <trading-name>Broken Price</trading-name>
      <latitude>-31.9</latitude>
      <longitude>115.8</longitude>
    </item>
    <item>
      <brand>BP</brand>
      <price>189.5</price>
      <trading-name>Off The Map</trading-name>
      <latitude>-131.9</latitude>
      <longitude>115.8</longitude>
    </item>
    <item>
      <brand>Ampol</brand>
      <date>2024-05-01</date>
      <price> 181.7 </price>
      <trading-name>Ampol Perth</trading-name>
      <location>PERTH</location>
      <address>1 Hay St</address>
      <latitude>-31.95</latitude>
      <longitude>115.86</longitude>
    </item>
  </channel>
</rss>`

func TestFuelWatch_Fetch(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("successful fetch", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), feed.FuelWatchURL)
				assert.Equal(t, "4", req.URL.Query().Get("Product"))
				assert.Equal(t, "25", req.URL.Query().Get("Region"))
				assert.Empty(t, req.URL.Query().Get("Day"))
				assert.Contains(t, req.Header.Get("User-Agent"), "Servo-Fuel-Finder")

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(sampleFeed)),
				}, nil
			},
		}

		source := feed.NewFuelWatchWithClient(mockClient, feed.FuelWatchConfig{Product: "4", Region: "25"}, logger)
		facilities, err := source.Fetch(ctx)

		require.NoError(t, err)
		require.Len(t, facilities, 2)

		first := facilities[0]
		assert.Equal(t, "Vibe Kwinana", first.TradingName)
		assert.Equal(t, "Vibe", first.Brand)
		assert.Equal(t, "KWINANA", first.Location)
		assert.Equal(t, "2 Kwinana Beach Rd", first.Address)
		assert.Equal(t, "2024-05-01", first.Date)
		assert.InDelta(t, 172.9, first.Price, 1e-9)
		assert.InDelta(t, -32.236, first.Point.Lat(), 1e-9)
		assert.InDelta(t, 115.77, first.Point.Lng(), 1e-9)
		assert.Nil(t, first.DistanceTo)
		assert.Nil(t, first.TravelDurationText)

		assert.Equal(t, "Ampol Perth", facilities[1].TradingName)
		assert.InDelta(t, 181.7, facilities[1].Price, 1e-9)
	})

	t.Run("custom base URL", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "feed.local", req.URL.Host)
				assert.Equal(t, "tomorrow", req.URL.Query().Get("Day"))
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(sampleFeed)),
				}, nil
			},
		}

		cfg := feed.FuelWatchConfig{BaseURL: "http://feed.local/rss", Day: "tomorrow"}
		facilities, err := feed.NewFuelWatchWithClient(mockClient, cfg, logger).Fetch(ctx)

		require.NoError(t, err)
		assert.Len(t, facilities, 2)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		source := feed.NewFuelWatchWithClient(respond(http.StatusServiceUnavailable, "down"), feed.FuelWatchConfig{}, logger)
		facilities, err := source.Fetch(ctx)

		require.ErrorIs(t, err, feed.ErrFeedStatus)
		require.Nil(t, facilities)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		_, err := feed.NewFuelWatchWithClient(mockClient, feed.FuelWatchConfig{}, logger).Fetch(ctx)

		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to execute feed request")
	})

	t.Run("invalid XML", func(t *testing.T) {
		source := feed.NewFuelWatchWithClient(respond(http.StatusOK, "<rss><channel>"), feed.FuelWatchConfig{}, logger)
		_, err := source.Fetch(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode fuel feed")
	})

	t.Run("no items", func(t *testing.T) {
		body := `<rss version="2.0"><channel><title>empty</title></channel></rss>`
		_, err := feed.NewFuelWatchWithClient(respond(http.StatusOK, body), feed.FuelWatchConfig{}, logger).Fetch(ctx)

		require.ErrorIs(t, err, feed.ErrFeedEmpty)
	})

	t.Run("only invalid items", func(t *testing.T) {
		body := `<rss><channel><item><price>abc</price><latitude>1</latitude><longitude>2</longitude></item></channel></rss>`
		_, err := feed.NewFuelWatchWithClient(respond(http.StatusOK, body), feed.FuelWatchConfig{}, logger).Fetch(ctx)

		require.ErrorIs(t, err, feed.ErrFeedEmpty)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		cfg := feed.FuelWatchConfig{BaseURL: "://bad"}
		_, err := feed.NewFuelWatchWithClient(respond(http.StatusOK, sampleFeed), cfg, logger).Fetch(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse base URL")
	})
}
