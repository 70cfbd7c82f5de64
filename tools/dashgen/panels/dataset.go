package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RecordCount returns a stat panel showing the size of the cached dataset.
func RecordCount() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Dataset Records").
		Description("Price records in the currently cached dataset").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`mandi_dataset_records{job="mandi-price-tracker"}`, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// CacheHitRatio returns a timeseries panel showing the fraction of dataset
// loads served from the in-memory cache.
func CacheHitRatio() *timeseries.PanelBuilder {
	expr := `sum(rate(mandi_dataset_cache_hits_total{job="mandi-price-tracker"}[5m])) / (sum(rate(mandi_dataset_cache_hits_total{job="mandi-price-tracker"}[5m])) + sum(rate(mandi_dataset_reloads_total{job="mandi-price-tracker"}[5m]))) * 100`
	return timeseries.NewPanelBuilder().
		Title("Cache Hit Ratio").
		Description("Percentage of dataset loads served from the mtime cache").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(expr, "hit %", "A")).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LoadFailures returns a timeseries panel showing dataset load failures
// per minute.
func LoadFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Load Failures / min").
		Description("Rate of dataset load failures, including sample fallbacks").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`mandi:dataset_load_failures:rate5m * 60`, "failures/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
