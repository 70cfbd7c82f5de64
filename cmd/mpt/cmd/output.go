package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/khetdata/mandi-price-tracker/internal/service"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printQuotesTable(quotes []service.PriceQuote) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("MARKET\tMIN\tMAX\tMODAL\tDATE\n")
	for i := range quotes {
		tw.writef("%s\t₹%d\t₹%d\t₹%d\t%s\n",
			truncate(quotes[i].Market, 40),
			quotes[i].Min,
			quotes[i].Max,
			quotes[i].Modal,
			quotes[i].Date,
		)
	}
	return tw.finish()
}

func printMetadataDetail(md *service.MetadataResult) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Records:\t%d\n", md.TotalRecords)
	tw.writef("States:\t%s\n", joinTruncated(md.States, 10))
	tw.writef("Districts:\t%s\n", joinTruncated(md.Districts, 10))
	tw.writef("Commodities:\t%s\n", joinTruncated(md.Commodities, 10))
	tw.writef("Markets:\t%s\n", joinTruncated(md.Markets, 10))
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinTruncated(values []string, maxShown int) string {
	if len(values) <= maxShown {
		return strings.Join(values, ", ")
	}
	return fmt.Sprintf("%s and %d more",
		strings.Join(values[:maxShown], ", "),
		len(values)-maxShown,
	)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
