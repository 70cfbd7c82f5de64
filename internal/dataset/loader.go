// Package dataset loads the mandi price CSV into memory and memoizes the
// parsed result keyed on the file's modification time. A bundled sample
// CSV stands in when the primary file is missing, so a fresh checkout
// serves plausible data without any setup.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/khetdata/mandi-price-tracker/internal/mandi"
	"github.com/khetdata/mandi-price-tracker/internal/metrics"
)

// ErrDataAccess marks a dataset that is present but unreadable after the
// sample fallback has also failed. This is the only hard failure the
// loader surfaces; everything else degrades to sample data or an empty
// dataset.
var ErrDataAccess = errors.New("dataset unreadable")

// Loader reads and caches the price dataset. The cache holds the
// (records, version) pair as a unit and replaces it atomically under the
// mutex, so a partially updated cache is never observable.
type Loader struct {
	path       string
	samplePath string
	log        *slog.Logger

	mu      sync.Mutex
	records []mandi.PriceRecord
	version int64
	cached  bool
}

// NewLoader creates a Loader for the primary CSV at path with a bundled
// sample CSV at samplePath as fallback.
func NewLoader(path, samplePath string, log *slog.Logger) *Loader {
	return &Loader{path: path, samplePath: samplePath, log: log}
}

// Load returns the full canonical dataset. The parsed result is cached
// until the file's modification time changes. A missing primary file
// falls back to the sample CSV; if that is also missing, Load returns an
// empty dataset and no error. Only a present-but-unreadable primary with
// a failing sample fallback yields an error.
func (l *Loader) Load() ([]mandi.PriceRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	if err != nil {
		l.log.Warn("dataset file not found, serving bundled sample", "path", l.path)
		records, sampleErr := l.loadSample()
		if sampleErr != nil {
			l.log.Warn("sample dataset unavailable, serving empty dataset",
				"path", l.samplePath, "error", sampleErr)
			return []mandi.PriceRecord{}, nil
		}
		return records, nil
	}

	version := info.ModTime().UnixNano()
	if l.cached && l.version == version {
		metrics.DatasetCacheHitsTotal.Inc()
		return l.records, nil
	}

	records, err := parseFile(l.path)
	if err != nil {
		metrics.DatasetLoadFailuresTotal.Inc()
		l.log.Error("parsing dataset failed, trying sample", "path", l.path, "error", err)

		sample, sampleErr := l.loadSample()
		if sampleErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDataAccess, l.path, err)
		}
		return sample, nil
	}

	l.records = records
	l.version = version
	l.cached = true

	metrics.DatasetReloadsTotal.Inc()
	metrics.DatasetRecords.Set(float64(len(records)))
	l.log.Info("dataset loaded", "path", l.path, "records", len(records))

	return records, nil
}

// loadSample reads the bundled sample CSV. Sample data is not cached: it
// only serves degraded states and re-reading keeps the primary-file cache
// logic in one place.
func (l *Loader) loadSample() ([]mandi.PriceRecord, error) {
	records, err := parseFile(l.samplePath)
	if err != nil {
		metrics.DatasetLoadFailuresTotal.Inc()
		return nil, err
	}
	l.log.Info("sample dataset loaded", "path", l.samplePath, "records", len(records))
	return records, nil
}

func parseFile(path string) ([]mandi.PriceRecord, error) {
	f, err := os.Open(path) //nolint:gosec // dataset path from trusted config
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// ParseCSV parses CSV content with a header row into canonical price
// records. Rows run through the alias-resolving normalizer, so mixed
// header conventions and malformed values degrade to defaults instead of
// failing the whole parse.
func ParseCSV(r io.Reader) ([]mandi.PriceRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []mandi.PriceRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var records []mandi.PriceRecord
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[strings.TrimSpace(name)] = fields[i]
			}
		}
		records = append(records, mandi.Normalize(row))
	}

	if records == nil {
		records = []mandi.PriceRecord{}
	}
	return records, nil
}
