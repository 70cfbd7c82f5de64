// Package mandi defines the canonical price record for mandi (wholesale
// agricultural market) price quotations and the pure operations over it:
// normalization of raw tabular rows, query filtering, and metadata
// extraction.
package mandi

// PriceRecord is the normalized, alias-resolved representation of one
// price quotation, independent of the source's original column naming.
type PriceRecord struct {
	Market    string `json:"market"`
	Commodity string `json:"commodity"`
	State     string `json:"state"`
	District  string `json:"district"`

	// Prices are stored as parsed from the source; unit conversion for
	// display is the consumer's responsibility.
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	ModalPrice float64 `json:"modal_price"`

	ArrivalDate     string  `json:"arrival_date"`
	ArrivalQuantity float64 `json:"arrival_quantity,omitempty"`
	Variety         string  `json:"variety,omitempty"`
}

// Query holds optional filters for a price lookup. Empty fields match
// everything.
type Query struct {
	Commodity string
	State     string
	District  string
}

// Default values used when a source row carries no usable value for a
// required field.
const (
	DefaultMarket    = "Unknown Market"
	DefaultCommodity = "Unknown Commodity"
	DefaultState     = "Unknown State"
	DefaultDistrict  = "Unknown District"
)
