package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "mandi-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "mandi-recording",
					Rules: []Rule{
						{
							Record: "mandi:http_requests:rate5m",
							Expr:   `sum(rate(mandi_http_requests_total[5m]))`,
						},
						{
							Record: "mandi:http_errors:rate5m",
							Expr:   `sum(rate(mandi_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "mandi:dataset_load_failures:rate5m",
							Expr:   `rate(mandi_dataset_load_failures_total[5m])`,
						},
						{
							Record: "mandi:govapi_calls:rate5m",
							Expr:   `rate(mandi_govapi_calls_total[5m])`,
						},
						{
							Record: "mandi:govapi_failures:rate5m",
							Expr:   `rate(mandi_govapi_failures_total[5m])`,
						},
						{
							Record: "mandi:price_queries:rate5m",
							Expr:   `sum(rate(mandi_price_queries_total[5m])) by (source)`,
						},
					},
				},
			},
		},
	}
}
