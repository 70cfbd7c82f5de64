package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khetdata/mandi-price-tracker/internal/api/handlers"
	"github.com/khetdata/mandi-price-tracker/internal/dataset"
	"github.com/khetdata/mandi-price-tracker/internal/service"
)

type fakeResolver struct {
	pricesResult   *service.PricesResult
	pricesErr      error
	metadataResult *service.MetadataResult
	metadataErr    error

	gotCommodity string
	gotState     string
	gotDistrict  string
}

func (f *fakeResolver) GetPrices(
	_ context.Context,
	commodity, state, district string,
) (*service.PricesResult, error) {
	f.gotCommodity = commodity
	f.gotState = state
	f.gotDistrict = district
	return f.pricesResult, f.pricesErr
}

func (f *fakeResolver) GetMetadata(_ context.Context) (*service.MetadataResult, error) {
	return f.metadataResult, f.metadataErr
}

func newPricesAPI(t *testing.T, r *fakeResolver) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterPriceRoutes(api, handlers.NewPricesHandler(r))
	return api
}

func TestGetPrices(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		pricesResult: &service.PricesResult{
			Prices: []service.PriceQuote{
				{Market: "Kalaburgi Mandi", Min: 80, Max: 120, Modal: 100, Date: "2024-06-01"},
			},
			Commodity: "Tomato",
			State:     "Karnataka",
			Message:   "Found 1 price records for Tomato in Karnataka (local dataset)",
		},
	}
	api := newPricesAPI(t, resolver)

	resp := api.Post("/api/v1/prices", map[string]any{
		"commodity": "Tomato",
		"state":     "Karnataka",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "Tomato", resolver.gotCommodity)
	assert.Equal(t, "Karnataka", resolver.gotState)
	assert.Empty(t, resolver.gotDistrict)

	var body service.PricesResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Prices, 1)
	assert.Equal(t, 100, body.Prices[0].Modal)
	assert.Contains(t, body.Message, "Found 1 price records")
}

func TestGetPrices_DefaultsAppliedWhenBodyEmpty(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		pricesResult: &service.PricesResult{Prices: []service.PriceQuote{}},
	}
	api := newPricesAPI(t, resolver)

	resp := api.Post("/api/v1/prices", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "Tomato", resolver.gotCommodity)
	assert.Equal(t, "Karnataka", resolver.gotState)
	assert.Empty(t, resolver.gotDistrict)
}

func TestGetPrices_DistrictPassedThrough(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		pricesResult: &service.PricesResult{Prices: []service.PriceQuote{}},
	}
	api := newPricesAPI(t, resolver)

	resp := api.Post("/api/v1/prices", map[string]any{
		"commodity": "Onion",
		"state":     "Maharashtra",
		"district":  "Nashik",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Nashik", resolver.gotDistrict)
}

func TestGetPrices_NoMatchIsStillOK(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		pricesResult: &service.PricesResult{
			Prices:    []service.PriceQuote{},
			Commodity: "Mango",
			State:     "Goa",
			Message:   `No price data available for "Mango" in "Goa".`,
			Suggestions: &service.Suggestions{
				WorkingCombination:   "Tomato + Karnataka",
				AvailableStates:      8,
				AvailableCommodities: 7,
			},
		},
	}
	api := newPricesAPI(t, resolver)

	resp := api.Post("/api/v1/prices", map[string]any{
		"commodity": "Mango",
		"state":     "Goa",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"workingCombination":"Tomato + Karnataka"`)
	assert.Contains(t, body, `"prices":[]`)
}

func TestGetPrices_DataAccessErrorIs500(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		pricesErr: fmt.Errorf("loading price dataset: %w", dataset.ErrDataAccess),
	}
	api := newPricesAPI(t, resolver)

	resp := api.Post("/api/v1/prices", map[string]any{"commodity": "Tomato"})
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "price dataset unreadable")
}

func TestGetPrices_GenericErrorIs500(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{pricesErr: errors.New("boom")}
	api := newPricesAPI(t, resolver)

	resp := api.Post("/api/v1/prices", map[string]any{"commodity": "Tomato"})
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "price query failed")
}

func TestGetMetadata(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		metadataResult: &service.MetadataResult{
			Message: "Loaded 2 mandi records with 2 states, 2 districts, and 2 commodities",
		},
	}
	resolver.metadataResult.States = []string{"Delhi", "Karnataka"}
	resolver.metadataResult.Commodities = []string{"Onion", "Tomato"}
	resolver.metadataResult.TotalRecords = 2

	api := newPricesAPI(t, resolver)

	resp := api.Get("/api/v1/metadata")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"totalRecords":2`)
	assert.Contains(t, body, `"Karnataka"`)
	assert.Contains(t, body, "Loaded 2 mandi records")
}

func TestGetMetadata_Error(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{metadataErr: errors.New("boom")}
	api := newPricesAPI(t, resolver)

	resp := api.Get("/api/v1/metadata")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "metadata query failed")
}
