package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/khetdata/mandi-price-tracker/internal/dataset"
	"github.com/khetdata/mandi-price-tracker/internal/service"
)

// Example query used when the caller supplies no filters at all.
const (
	defaultCommodity = "Tomato"
	defaultState     = "Karnataka"
)

// PriceResolver is the service surface the price endpoints need.
type PriceResolver interface {
	GetPrices(ctx context.Context, commodity, state, district string) (*service.PricesResult, error)
	GetMetadata(ctx context.Context) (*service.MetadataResult, error)
}

// PricesHandler handles price lookup and metadata endpoints.
type PricesHandler struct {
	resolver PriceResolver
}

// NewPricesHandler creates a new PricesHandler.
func NewPricesHandler(r PriceResolver) *PricesHandler {
	return &PricesHandler{resolver: r}
}

// --- Input/Output types ---

// GetPricesInput is the request body for a price lookup.
type GetPricesInput struct {
	Body struct {
		Commodity string `json:"commodity,omitempty" doc:"Commodity name, matched as a case-insensitive substring" example:"Tomato"`
		State     string `json:"state,omitempty"     doc:"State name, matched as a case-insensitive substring"     example:"Karnataka"`
		District  string `json:"district,omitempty"  doc:"District name, matched as a case-insensitive substring"  example:"Kalaburgi"`
	}
}

// GetPricesOutput is the response for a price lookup.
type GetPricesOutput struct {
	Body service.PricesResult
}

// GetMetadataOutput is the response for the dataset metadata lookup.
type GetMetadataOutput struct {
	Body service.MetadataResult
}

// --- Handlers ---

// GetPrices answers a commodity/state/district price query. Commodity and
// state fall back to a known-working example when omitted; an empty match
// is a normal 200 response carrying suggestions, never an error.
func (h *PricesHandler) GetPrices(
	ctx context.Context,
	input *GetPricesInput,
) (*GetPricesOutput, error) {
	commodity := input.Body.Commodity
	if commodity == "" {
		commodity = defaultCommodity
	}
	state := input.Body.State
	if state == "" {
		state = defaultState
	}

	result, err := h.resolver.GetPrices(ctx, commodity, state, input.Body.District)
	if err != nil {
		if errors.Is(err, dataset.ErrDataAccess) {
			return nil, huma.Error500InternalServerError("price dataset unreadable: " + err.Error())
		}
		return nil, huma.Error500InternalServerError("price query failed: " + err.Error())
	}

	return &GetPricesOutput{Body: *result}, nil
}

// GetMetadata returns the unique states, districts, commodities, and
// markets in the dataset, for populating selection UIs.
func (h *PricesHandler) GetMetadata(
	ctx context.Context,
	_ *struct{},
) (*GetMetadataOutput, error) {
	result, err := h.resolver.GetMetadata(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("metadata query failed: " + err.Error())
	}

	return &GetMetadataOutput{Body: *result}, nil
}

// RegisterPriceRoutes registers price endpoints with the Huma API.
func RegisterPriceRoutes(api huma.API, h *PricesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-prices",
		Method:      http.MethodPost,
		Path:        "/api/v1/prices",
		Summary:     "Look up mandi prices",
		Description: "Returns price quotes for a commodity/state/district query, falling back to the government open-data API when the local dataset has no match.",
		Tags:        []string{"prices"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.GetPrices)

	huma.Register(api, huma.Operation{
		OperationID: "get-metadata",
		Method:      http.MethodGet,
		Path:        "/api/v1/metadata",
		Summary:     "Get dataset metadata",
		Description: "Returns the unique states, districts, commodities, and markets in the dataset, plus a state-to-districts index.",
		Tags:        []string{"prices"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.GetMetadata)
}
