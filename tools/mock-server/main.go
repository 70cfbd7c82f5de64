// Package main implements a mock data.gov.in resource server for local
// development. It serves records from a CSV fixture so the government API
// fallback can be exercised without a real API key or network access.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/khetdata/mandi-price-tracker/internal/dataset"
	"github.com/khetdata/mandi-price-tracker/internal/mandi"
)

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	fixtureFile := flag.String("fixture", "data/sample-mandi-data.csv", "path to CSV fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	records, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "records", len(records))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /resource/{id}", resourceHandler(logger, records))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock data.gov.in server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) ([]mandi.PriceRecord, error) {
	f, err := os.Open(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("opening fixture: %w", err)
	}
	defer f.Close()

	records, err := dataset.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return records, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func resourceHandler(logger *slog.Logger, records []mandi.PriceRecord) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The real API rejects requests without a key; don't verify the value.
		if r.URL.Query().Get("api-key") == "" {
			logger.Warn("request missing api-key")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "error",
				"message": "api key is required",
			})
			return
		}

		q := mandi.Query{
			Commodity: r.URL.Query().Get("filters[commodity]"),
			State:     r.URL.Query().Get("filters[state]"),
			District:  r.URL.Query().Get("filters[district]"),
		}

		limit := 10
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}

		matched := mandi.Filter(records, q)
		total := len(matched)
		if len(matched) > limit {
			matched = matched[:limit]
		}

		rows := make([]map[string]any, 0, len(matched))
		for _, rec := range matched {
			rows = append(rows, map[string]any{
				"market":       rec.Market,
				"commodity":    rec.Commodity,
				"state":        rec.State,
				"district":     rec.District,
				"min_price":    rec.MinPrice,
				"max_price":    rec.MaxPrice,
				"modal_price":  rec.ModalPrice,
				"arrival_date": rec.ArrivalDate,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"total":   total,
			"count":   len(rows),
			"limit":   limit,
			"records": rows,
		})
		logger.Info("resource query",
			"commodity", q.Commodity, "state", q.State, "district", q.District,
			"matched", total, "returned", len(rows))
	}
}
