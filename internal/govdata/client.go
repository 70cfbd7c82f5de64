// Package govdata provides a client for the data.gov.in daily mandi price
// resource, abstracted behind an interface for testability.
package govdata

import (
	"context"

	"github.com/khetdata/mandi-price-tracker/internal/mandi"
)

// Resolver defines the interface for fetching mandi prices from the
// government open-data API. Implementations return canonical price
// records that already satisfy the given query.
type Resolver interface {
	FetchPrices(ctx context.Context, q mandi.Query) ([]mandi.PriceRecord, error)
}
