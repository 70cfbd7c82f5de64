package client

import (
	"context"

	"github.com/khetdata/mandi-price-tracker/internal/service"
)

// PricesParams defines the filters for a price lookup.
type PricesParams struct {
	Commodity string `json:"commodity,omitempty"`
	State     string `json:"state,omitempty"`
	District  string `json:"district,omitempty"`
}

// GetPrices looks up mandi prices for the given filters.
func (c *Client) GetPrices(
	ctx context.Context,
	params *PricesParams,
) (*service.PricesResult, error) {
	var resp service.PricesResult
	if err := c.post(ctx, "/api/v1/prices", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMetadata returns the dataset metadata.
func (c *Client) GetMetadata(ctx context.Context) (*service.MetadataResult, error) {
	var resp service.MetadataResult
	if err := c.get(ctx, "/api/v1/metadata", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
