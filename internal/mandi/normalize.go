package mandi

import (
	"strconv"
	"strings"
	"time"
)

// Column alias tables, tried in priority order. Government exports, scraped
// datasets, and hand-edited CSVs disagree on header naming; the first alias
// with a non-empty value wins.
var (
	marketAliases    = []string{"market", "market_name", "mandi", "Market"}
	commodityAliases = []string{"commodity", "crop", "Commodity"}
	stateAliases     = []string{"state", "State"}
	districtAliases  = []string{"district", "District"}

	minPriceAliases = []string{"min_price", "minPrice", "minimum_price", "Min_x0020_Price"}
	maxPriceAliases = []string{"max_price", "maxPrice", "maximum_price", "Max_x0020_Price"}
	modalPriceAliases = []string{
		"modal_price", "modalPrice", "price", "average_price", "Modal_x0020_Price",
	}

	arrivalDateAliases     = []string{"arrival_date", "date", "arrivalDate", "Arrival_Date"}
	arrivalQuantityAliases = []string{"arrival_quantity", "quantity"}
	varietyAliases         = []string{"variety", "type", "Variety"}
)

// nowFunc is swapped in tests to pin the default arrival date.
var nowFunc = time.Now

// Normalize maps one raw row onto a PriceRecord. It is total: any
// malformed or missing input degrades to the field defaults, never to an
// error. Numeric fields are never NaN and never negative beyond what the
// source itself encodes.
func Normalize(row map[string]string) PriceRecord {
	return PriceRecord{
		Market:          firstNonEmpty(row, marketAliases, DefaultMarket),
		Commodity:       firstNonEmpty(row, commodityAliases, DefaultCommodity),
		State:           firstNonEmpty(row, stateAliases, DefaultState),
		District:        firstNonEmpty(row, districtAliases, DefaultDistrict),
		MinPrice:        firstNumeric(row, minPriceAliases),
		MaxPrice:        firstNumeric(row, maxPriceAliases),
		ModalPrice:      firstNumeric(row, modalPriceAliases),
		ArrivalDate:     firstNonEmpty(row, arrivalDateAliases, nowFunc().Format("2006-01-02")),
		ArrivalQuantity: firstNumeric(row, arrivalQuantityAliases),
		Variety:         firstNonEmpty(row, varietyAliases, ""),
	}
}

// ParseNumber parses a price or quantity string after stripping every
// character except digits, '.' and '-'. Unparsable input yields 0.
func ParseNumber(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

func firstNonEmpty(row map[string]string, aliases []string, fallback string) string {
	for _, key := range aliases {
		if v := strings.TrimSpace(row[key]); v != "" {
			return v
		}
	}
	return fallback
}

func firstNumeric(row map[string]string, aliases []string) float64 {
	for _, key := range aliases {
		if v := strings.TrimSpace(row[key]); v != "" {
			n := ParseNumber(v)
			if n < 0 {
				return 0
			}
			return n
		}
	}
	return 0
}
