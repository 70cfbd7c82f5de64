package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// mandi-price-tracker operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "mandi-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "mandi-alerts",
					Rules: []Rule{
						{
							Alert: "MandiDown",
							Expr:  `absent(up{job="mandi-price-tracker"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Mandi Price Tracker is down",
								"description": "The mandi-price-tracker job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "MandiReadinessDown",
							Expr:  `mandi_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Mandi Price Tracker readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "MandiHighErrorRate",
							Expr:  `mandi:http_errors:rate5m / mandi:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Mandi Price Tracker",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "MandiDatasetEmpty",
							Expr:  `mandi_dataset_records == 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Price dataset is empty",
								"description": "The cached dataset has held zero records for more than 10 minutes. Queries are falling through to the government API or returning no data.",
							},
						},
						{
							Alert: "MandiDatasetLoadFailures",
							Expr:  `mandi:dataset_load_failures:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Dataset load failures detected",
								"description": "CSV dataset loads have been failing for more than 5 minutes. The server may be serving sample or stale data.",
							},
						},
						{
							Alert: "MandiGovQuotaHigh",
							Expr:  `mandi_govapi_daily_usage > 800`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Government API daily usage is above 80% of the quota",
								"description": "Daily data.gov.in API usage has exceeded 800 calls (quota is 1000).",
							},
						},
						{
							Alert: "MandiGovLimitReached",
							Expr:  `increase(mandi_govapi_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Government API daily quota has been reached",
								"description": "The data.gov.in daily quota has been exhausted. The fallback is unavailable until the window resets.",
							},
						},
						{
							Alert: "MandiGovFailures",
							Expr:  `mandi:govapi_failures:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Government API failure rate is elevated",
								"description": "Government API calls are failing at more than 0.1/s for the last 5 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
