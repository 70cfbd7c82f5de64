package govdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/khetdata/mandi-price-tracker/internal/mandi"
	"github.com/khetdata/mandi-price-tracker/internal/metrics"
)

const (
	// Current daily price resource of the Directorate of Marketing &
	// Inspection, published on data.gov.in.
	defaultBaseURL = "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"

	defaultLimit   = 20
	defaultTimeout = 10 * time.Second
)

// Client implements Resolver against the data.gov.in API.
type Client struct {
	apiKey      string
	baseURL     string
	limit       int
	client      *http.Client
	rateLimiter *RateLimiter
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default resource endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLimit overrides the default page size requested from the API.
func WithLimit(n int) Option {
	return func(c *Client) {
		c.limit = n
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that bounds per-second and daily
// API usage. When set, every FetchPrices call goes through Wait first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// NewClient creates a data.gov.in client. The API key is required; all
// other settings have workable defaults.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		limit:   defaultLimit,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPrices queries the government API with the query's fields as
// filters and normalizes the response into canonical records. The API's
// own filtering is advisory only: results are re-filtered locally with
// the same substring matching the local dataset uses.
func (c *Client) FetchPrices(
	ctx context.Context,
	q mandi.Query,
) ([]mandi.PriceRecord, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyQuotaReached) {
				metrics.GovAPIDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.GovAPIDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}
	metrics.GovAPICallsTotal.Inc()

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.buildURL(q), http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.GovAPIFailuresTotal.Inc()
		return nil, fmt.Errorf("executing price request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GovAPIFailuresTotal.Inc()
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.GovAPIFailuresTotal.Inc()
		return nil, fmt.Errorf(
			"government API error (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	rows, err := decodeRows(body)
	if err != nil {
		metrics.GovAPIFailuresTotal.Inc()
		return nil, fmt.Errorf("parsing price response: %w", err)
	}

	records := make([]mandi.PriceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, mandi.Normalize(stringify(row)))
	}

	return mandi.Filter(records, q), nil
}

func (c *Client) buildURL(q mandi.Query) string {
	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(c.limit))

	if q.Commodity != "" {
		params.Set("filters[commodity]", q.Commodity)
	}
	if q.State != "" {
		params.Set("filters[state]", q.State)
	}
	if q.District != "" {
		params.Set("filters[district]", q.District)
	}

	return c.baseURL + "?" + params.Encode()
}

// apiEnvelope covers the two object-shaped responses the API is known to
// produce. A bare top-level array is the third shape, tried last.
type apiEnvelope struct {
	Records []map[string]any `json:"records"`
	Data    []map[string]any `json:"data"`
}

func decodeRows(body []byte) ([]map[string]any, error) {
	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		switch {
		case env.Records != nil:
			return env.Records, nil
		case env.Data != nil:
			return env.Data, nil
		}
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err == nil {
		return rows, nil
	}

	return nil, fmt.Errorf("unrecognized response shape")
}

// stringify flattens a decoded JSON row into the string map the
// normalizer consumes. Numbers keep their shortest decimal form.
func stringify(row map[string]any) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
