// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/khetdata/mandi-price-tracker/tools/dashgen/panels"
)

// BuildOverview constructs the Mandi Price Tracker overview dashboard with
// all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Mandi Price Tracker Overview").
		Uid("mandi-overview").
		Tags([]string{"mandi", "mandi-price-tracker"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Dataset.
	b.WithRow(dashboard.NewRowBuilder("Dataset").
		WithPanel(panels.RecordCount()).
		WithPanel(panels.CacheHitRatio()).
		WithPanel(panels.LoadFailures()))

	// Row 4: Government API.
	b.WithRow(dashboard.NewRowBuilder("Government API").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()).
		WithPanel(panels.FailureRate()))

	// Row 5: Price Queries.
	b.WithRow(dashboard.NewRowBuilder("Price Queries").
		WithPanel(panels.QueriesBySource()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
