package main

import "errors"

// KnownMetrics is the set of metric names exported by mandi-price-tracker
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"mandi_http_request_duration_seconds": true,
	"mandi_http_requests_total":           true,

	// Health metrics.
	"mandi_healthz_up": true,
	"mandi_readyz_up":  true,

	// Dataset metrics.
	"mandi_dataset_reloads_total":       true,
	"mandi_dataset_cache_hits_total":    true,
	"mandi_dataset_records":             true,
	"mandi_dataset_load_failures_total": true,

	// Government API metrics.
	"mandi_govapi_calls_total":            true,
	"mandi_govapi_failures_total":         true,
	"mandi_govapi_daily_usage":            true,
	"mandi_govapi_daily_limit_hits_total": true,

	// Price resolution metrics.
	"mandi_price_queries_total": true,

	// Recording rules.
	"mandi:http_requests:rate5m":         true,
	"mandi:http_errors:rate5m":           true,
	"mandi:dataset_load_failures:rate5m": true,
	"mandi:govapi_calls:rate5m":          true,
	"mandi:govapi_failures:rate5m":       true,
	"mandi:price_queries:rate5m":         true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
