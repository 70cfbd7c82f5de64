package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// QueriesBySource returns a timeseries panel showing price queries per
// second broken down by which source answered them.
func QueriesBySource() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Price Queries by Source").
		Description("Price queries per second by answering source (local, government_api, none)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(`mandi:price_queries:rate5m`, "{{source}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
