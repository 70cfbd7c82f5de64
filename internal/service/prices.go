// Package service composes the dataset loader, query filter, and
// government API fallback into the consumer-facing price resolution
// operations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/khetdata/mandi-price-tracker/internal/govdata"
	"github.com/khetdata/mandi-price-tracker/internal/mandi"
	"github.com/khetdata/mandi-price-tracker/internal/metrics"
)

// defaultDisplayDivisor converts source price units to displayed rupees.
// The government dataset publishes prices in tens; treat this as an
// observed property of the data source, not a law.
const defaultDisplayDivisor = 10

// DatasetSource supplies the full canonical dataset. Satisfied by
// *dataset.Loader.
type DatasetSource interface {
	Load() ([]mandi.PriceRecord, error)
}

// PriceQuote is one displayable price quotation. Min, Max, and Modal are
// the canonical prices divided by the display divisor and rounded.
type PriceQuote struct {
	Market string `json:"market"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Modal  int    `json:"modal"`
	Date   string `json:"date"`
}

// Suggestions points a caller whose query matched nothing at data that
// does exist.
type Suggestions struct {
	WorkingCombination   string `json:"workingCombination"`
	AvailableStates      int    `json:"availableStates"`
	AvailableCommodities int    `json:"availableCommodities"`
}

// PricesResult is the full answer to a price query. An empty Prices slice
// with a populated message and suggestions is a normal response, not an
// error.
type PricesResult struct {
	Prices      []PriceQuote `json:"prices"`
	Commodity   string       `json:"commodity"`
	State       string       `json:"state"`
	District    string       `json:"district,omitempty"`
	Message     string       `json:"message"`
	Suggestions *Suggestions `json:"suggestions,omitempty"`
}

// MetadataResult is the dataset metadata plus a summary message.
type MetadataResult struct {
	mandi.Metadata
	Message string `json:"message"`
}

// PriceService answers price and metadata queries.
type PriceService struct {
	source   DatasetSource
	fallback govdata.Resolver // nil disables the government API fallback
	divisor  float64
	log      *slog.Logger
}

// ServiceOption configures the PriceService.
type ServiceOption func(*PriceService)

// WithFallback enables the government API fallback resolver.
func WithFallback(r govdata.Resolver) ServiceOption {
	return func(s *PriceService) {
		s.fallback = r
	}
}

// WithDisplayDivisor overrides the source-to-display price divisor.
func WithDisplayDivisor(d float64) ServiceOption {
	return func(s *PriceService) {
		if d > 0 {
			s.divisor = d
		}
	}
}

// NewPriceService creates a PriceService reading from source.
func NewPriceService(
	source DatasetSource,
	log *slog.Logger,
	opts ...ServiceOption,
) *PriceService {
	s := &PriceService{
		source:  source,
		divisor: defaultDisplayDivisor,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPrices answers "what are the prices for this commodity in this state
// (and optionally district)?". The local dataset is authoritative; the
// government API is consulted only when the local search yields nothing,
// and its failure is never surfaced as an error.
func (s *PriceService) GetPrices(
	ctx context.Context,
	commodity, state, district string,
) (*PricesResult, error) {
	records, err := s.source.Load()
	if err != nil {
		return nil, fmt.Errorf("loading price dataset: %w", err)
	}

	q := mandi.Query{Commodity: commodity, State: state, District: district}

	local := s.resolveLocal(records, q)
	if len(local.Prices) > 0 {
		metrics.PriceQueriesTotal.WithLabelValues(metrics.SourceLocal).Inc()
		local.Message += " (local dataset)"
		return local, nil
	}

	if s.fallback != nil {
		if result := s.resolveFallback(ctx, q); result != nil {
			metrics.PriceQueriesTotal.WithLabelValues(metrics.SourceFallback).Inc()
			return result, nil
		}
	}

	metrics.PriceQueriesTotal.WithLabelValues(metrics.SourceNone).Inc()
	local.Message += " (no data found in local dataset)"
	return local, nil
}

// GetMetadata derives the UI-population value sets from the full dataset.
func (s *PriceService) GetMetadata(_ context.Context) (*MetadataResult, error) {
	records, err := s.source.Load()
	if err != nil {
		return nil, fmt.Errorf("loading price dataset: %w", err)
	}

	md := mandi.ExtractMetadata(records)
	return &MetadataResult{
		Metadata: md,
		Message: fmt.Sprintf(
			"Loaded %d mandi records with %d states, %d districts, and %d commodities",
			md.TotalRecords, len(md.States), len(md.Districts), len(md.Commodities),
		),
	}, nil
}

func (s *PriceService) resolveLocal(
	records []mandi.PriceRecord,
	q mandi.Query,
) *PricesResult {
	result := &PricesResult{
		Prices:    []PriceQuote{},
		Commodity: q.Commodity,
		State:     q.State,
		District:  q.District,
	}

	if len(records) == 0 {
		result.Message = "No mandi data available. Provide a CSV dataset with mandi price data."
		result.Suggestions = &Suggestions{WorkingCombination: "Tomato + Karnataka"}
		return result
	}

	matches := mandi.Filter(records, q)
	if len(matches) == 0 {
		md := mandi.ExtractMetadata(records)

		msg := fmt.Sprintf("No price data available for %q in %q.", q.Commodity, q.State)
		if q.District != "" {
			msg += fmt.Sprintf(" No data found for district %q.", q.District)
		}
		msg += " Available states: " + summarize(md.States) + "."
		msg += " Available commodities: " + summarize(md.Commodities) + "."

		result.Message = msg
		result.Suggestions = &Suggestions{
			WorkingCombination:   firstOf(md.Commodities) + " + " + firstOf(md.States),
			AvailableStates:      len(md.States),
			AvailableCommodities: len(md.Commodities),
		}
		return result
	}

	result.Prices = s.toQuotes(matches)
	result.Message = foundMessage(len(matches), q)
	return result
}

// resolveFallback queries the government API. A nil return means the
// fallback produced nothing usable and the local no-data answer stands.
func (s *PriceService) resolveFallback(
	ctx context.Context,
	q mandi.Query,
) *PricesResult {
	records, err := s.fallback.FetchPrices(ctx, q)
	if err != nil {
		s.log.Warn("government API fallback failed", "error", err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	return &PricesResult{
		Prices:    s.toQuotes(records),
		Commodity: q.Commodity,
		State:     q.State,
		District:  q.District,
		Message:   foundMessage(len(records), q) + " (government API)",
	}
}

func (s *PriceService) toQuotes(records []mandi.PriceRecord) []PriceQuote {
	quotes := make([]PriceQuote, 0, len(records))
	for _, r := range records {
		quotes = append(quotes, PriceQuote{
			Market: r.Market,
			Min:    int(math.Round(r.MinPrice / s.divisor)),
			Max:    int(math.Round(r.MaxPrice / s.divisor)),
			Modal:  int(math.Round(r.ModalPrice / s.divisor)),
			Date:   r.ArrivalDate,
		})
	}
	return quotes
}

func foundMessage(n int, q mandi.Query) string {
	msg := fmt.Sprintf("Found %d price records for %s in %s", n, q.Commodity, q.State)
	if q.District != "" {
		msg += ", " + q.District
	}
	return msg
}

// summarize lists up to five values with an "and N more" suffix.
func summarize(values []string) string {
	const maxShown = 5
	if len(values) <= maxShown {
		return strings.Join(values, ", ")
	}
	return fmt.Sprintf(
		"%s and %d more",
		strings.Join(values[:maxShown], ", "),
		len(values)-maxShown,
	)
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
