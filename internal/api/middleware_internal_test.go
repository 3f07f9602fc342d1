package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadiusFromQuery(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"", DefaultRadiusKm, false},
		{"5", 5, false},
		{"0", MinRadiusKm, false},
		{"-3", MinRadiusKm, false},
		{"1000", MaxRadiusKm, false},
		{"Inf", MaxRadiusKm, false},
		{"NaN", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		got, err := radiusFromQuery(tt.raw)
		if tt.wantErr {
			require.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.InDelta(t, tt.want, got, 0, tt.raw)
	}
}

func TestClientLimiter(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		limiter := newClientLimiter(0)
		for range 100 {
			assert.True(t, limiter.allow("10.0.0.1"))
		}
	})

	t.Run("buckets are per client", func(t *testing.T) {
		limiter := newClientLimiter(2)
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		assert.True(t, limiter.allow("10.0.0.1"))
		assert.True(t, limiter.allow("10.0.0.1"))
		assert.False(t, limiter.allow("10.0.0.1"))
		assert.True(t, limiter.allow("10.0.0.2"))

		now = now.Add(time.Second)
		assert.True(t, limiter.allow("10.0.0.1"))
	})

	t.Run("idle clients are forgotten", func(t *testing.T) {
		limiter := newClientLimiter(1)
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		limiter.allow("10.0.0.1")
		now = now.Add(limiterIdleTTL + time.Second)
		limiter.allow("10.0.0.2")

		assert.Len(t, limiter.clients, 1)
		assert.Contains(t, limiter.clients, "10.0.0.2")
	})
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:52000"
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", clientIP(req))
}
