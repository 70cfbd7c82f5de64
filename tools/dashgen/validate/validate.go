// Package validate checks generated dashboards against the set of metrics
// the server exports, catching renamed or misspelled metrics before they
// ship as silently empty panels.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors make validation fail;
// warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation passed.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Dashboard validates every PromQL expression in the dashboard: each must
// parse, and every metric it references must be in known.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var result Result

	exprs, err := collectExprs(dash)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if len(exprs) == 0 {
		result.Warnings = append(result.Warnings, "dashboard contains no PromQL expressions")
		return result
	}

	for _, expr := range exprs {
		node, err := parser.ParseExpr(expr)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("invalid PromQL %q: %v", expr, err))
			continue
		}

		for _, name := range metricNames(node) {
			if !known[name] {
				result.Errors = append(result.Errors,
					fmt.Sprintf("unknown metric %q in expression %q", name, expr))
			}
		}
	}

	return result
}

// collectExprs walks the JSON form of the dashboard and gathers every
// "expr" string. The foundation SDK stores query targets as opaque
// variants, so the JSON form is the stable surface to inspect.
func collectExprs(dash dashboard.Dashboard) ([]string, error) {
	data, err := json.Marshal(dash)
	if err != nil {
		return nil, fmt.Errorf("marshaling dashboard: %w", err)
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("re-parsing dashboard JSON: %w", err)
	}

	var exprs []string
	walk(tree, &exprs)
	return exprs, nil
}

func walk(node any, exprs *[]string) {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			if key == "expr" {
				if s, ok := val.(string); ok && s != "" {
					*exprs = append(*exprs, s)
					continue
				}
			}
			walk(val, exprs)
		}
	case []any:
		for _, item := range v {
			walk(item, exprs)
		}
	}
}

// metricNames extracts the metric names referenced by a parsed expression.
// Histogram series suffixes are stripped so expressions over _bucket,
// _sum, and _count resolve to the declared histogram name.
func metricNames(node parser.Expr) []string {
	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, stripHistogramSuffix(vs.Name))
		}
		return nil
	})
	return names
}

func stripHistogramSuffix(name string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}
