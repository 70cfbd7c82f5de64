package govdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khetdata/mandi-price-tracker/internal/mandi"
)

func TestClient_FetchPrices_RecordsEnvelope(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"records": [
				{
					"market": "Kalaburgi Mandi",
					"commodity": "Tomato",
					"state": "Karnataka",
					"district": "Kalaburgi",
					"min_price": "800",
					"max_price": "1200",
					"modal_price": 1000,
					"arrival_date": "2024-06-01"
				}
			]
		}`))
	}))
	defer server.Close()

	c := NewClient("test-key", WithBaseURL(server.URL), WithLimit(50))

	records, err := c.FetchPrices(context.Background(), mandi.Query{
		Commodity: "Tomato",
		State:     "Karnataka",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Kalaburgi Mandi", records[0].Market)
	assert.Equal(t, 800.0, records[0].MinPrice)
	assert.Equal(t, 1000.0, records[0].ModalPrice)

	assert.Equal(t, "test-key", gotQuery.Get("api-key"))
	assert.Equal(t, "json", gotQuery.Get("format"))
	assert.Equal(t, "50", gotQuery.Get("limit"))
	assert.Equal(t, "Tomato", gotQuery.Get("filters[commodity]"))
	assert.Equal(t, "Karnataka", gotQuery.Get("filters[state]"))
	assert.Empty(t, gotQuery.Get("filters[district]"))
}

func TestClient_FetchPrices_DataEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"market": "Azadpur", "commodity": "Onion", "state": "Delhi"}]}`))
	}))
	defer server.Close()

	c := NewClient("k", WithBaseURL(server.URL))

	records, err := c.FetchPrices(context.Background(), mandi.Query{Commodity: "Onion"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Azadpur", records[0].Market)
}

func TestClient_FetchPrices_BareArray(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"Market": "Lasalgaon", "Commodity": "Onion", "State": "Maharashtra", "Modal_x0020_Price": "1200"}]`))
	}))
	defer server.Close()

	c := NewClient("k", WithBaseURL(server.URL))

	records, err := c.FetchPrices(context.Background(), mandi.Query{State: "maha"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Lasalgaon", records[0].Market)
	assert.Equal(t, 1200.0, records[0].ModalPrice)
}

func TestClient_FetchPrices_RefiltersLocally(t *testing.T) {
	t.Parallel()

	// The API ignores its filters here; the client must drop the
	// non-matching row itself.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"records": [
			{"market": "Kalaburgi Mandi", "commodity": "Tomato", "state": "Karnataka"},
			{"market": "Azadpur", "commodity": "Onion", "state": "Delhi"}
		]}`))
	}))
	defer server.Close()

	c := NewClient("k", WithBaseURL(server.URL))

	records, err := c.FetchPrices(context.Background(), mandi.Query{
		Commodity: "tomato",
		State:     "karnataka",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kalaburgi Mandi", records[0].Market)
}

func TestClient_FetchPrices_NonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient("k", WithBaseURL(server.URL))

	_, err := c.FetchPrices(context.Background(), mandi.Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestClient_FetchPrices_UnrecognizedShape(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`"just a string"`))
	}))
	defer server.Close()

	c := NewClient("k", WithBaseURL(server.URL))

	_, err := c.FetchPrices(context.Background(), mandi.Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized response shape")
}

func TestClient_FetchPrices_EmptyRecords(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"records": []}`))
	}))
	defer server.Close()

	c := NewClient("k", WithBaseURL(server.URL))

	records, err := c.FetchPrices(context.Background(), mandi.Query{Commodity: "Tomato"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_FetchPrices_DailyQuotaReached(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"records": []}`))
	}))
	defer server.Close()

	limiter := NewRateLimiter(100, 10, 1)
	c := NewClient("k", WithBaseURL(server.URL), WithRateLimiter(limiter))

	_, err := c.FetchPrices(context.Background(), mandi.Query{})
	require.NoError(t, err)

	_, err = c.FetchPrices(context.Background(), mandi.Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDailyQuotaReached)
}

func TestStringify(t *testing.T) {
	t.Parallel()

	got := stringify(map[string]any{
		"market":      "Guntur",
		"modal_price": float64(9800),
		"min_price":   7500.5,
		"timestamp":   nil,
		"flag":        true,
	})

	assert.Equal(t, map[string]string{
		"market":      "Guntur",
		"modal_price": "9800",
		"min_price":   "7500.5",
		"flag":        "true",
	}, got)
}

func TestRateLimiter_DailyQuota(t *testing.T) {
	t.Parallel()

	r := NewRateLimiter(1000, 1000, 2)

	require.NoError(t, r.Wait(context.Background()))
	require.NoError(t, r.Wait(context.Background()))
	assert.Equal(t, int64(2), r.DailyCount())
	assert.Equal(t, int64(0), r.Remaining())

	err := r.Wait(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDailyQuotaReached)
}

func TestRateLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	r := NewRateLimiter(1000, 1000, 1, WithRateLimiterNowFunc(func() time.Time {
		return now
	}))

	require.NoError(t, r.Wait(context.Background()))
	require.ErrorIs(t, r.Wait(context.Background()), ErrDailyQuotaReached)

	now = now.Add(25 * time.Hour)
	require.NoError(t, r.Wait(context.Background()))
	assert.Equal(t, int64(1), r.DailyCount())
}

func TestRateLimiter_ContextCancellation(t *testing.T) {
	t.Parallel()

	// Burst of 1 at a very slow refill rate forces the second call to
	// block until the context deadline hits.
	r := NewRateLimiter(0.001, 1, 100)

	require.NoError(t, r.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDailyQuotaReached)
}
