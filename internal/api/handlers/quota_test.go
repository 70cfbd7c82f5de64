package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khetdata/mandi-price-tracker/internal/api/handlers"
	"github.com/khetdata/mandi-price-tracker/internal/govdata"
)

func TestGetQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rl       *govdata.RateLimiter
		preCalls int
	}{
		{
			name: "nil rate limiter returns zeroes",
			rl:   nil,
		},
		{
			name: "fresh rate limiter",
			rl:   govdata.NewRateLimiter(100, 10, 1000),
		},
		{
			name:     "rate limiter with usage",
			rl:       govdata.NewRateLimiter(100, 10, 100),
			preCalls: 3,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Simulate some API calls.
			if tt.rl != nil {
				for i := 0; i < tt.preCalls; i++ {
					require.NoError(t, tt.rl.Wait(context.Background()))
				}
			}

			h := handlers.NewQuotaHandler(tt.rl)

			_, api := humatest.New(t)
			handlers.RegisterQuotaRoutes(api, h)

			resp := api.Get("/api/v1/quota")
			require.Equal(t, http.StatusOK, resp.Code)

			body := resp.Body.String()
			assert.Contains(t, body, `"daily_limit"`)
			assert.Contains(t, body, `"daily_used"`)
			assert.Contains(t, body, `"remaining"`)
			assert.Contains(t, body, `"reset_at"`)
		})
	}
}

func TestGetQuota_ResetAtValue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	rl := govdata.NewRateLimiter(
		5, 10, 1000,
		govdata.WithRateLimiterNowFunc(func() time.Time { return now }),
	)

	h := handlers.NewQuotaHandler(rl)

	_, api := humatest.New(t)
	handlers.RegisterQuotaRoutes(api, h)

	resp := api.Get("/api/v1/quota")
	require.Equal(t, http.StatusOK, resp.Code)

	// ResetAt should be 24 hours from now.
	body := resp.Body.String()
	assert.Contains(t, body, "2025-06-16T14:30:00Z")
}
