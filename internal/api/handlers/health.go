// Package handlers implements HTTP handlers for the mandi-price-tracker API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khetdata/mandi-price-tracker/internal/service"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	source service.DatasetSource
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(source service.DatasetSource) *HealthHandler {
	return &HealthHandler{source: source}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the dataset is loadable, 503 otherwise. A dataset
// that degrades to the sample or to empty still counts as ready; only a
// hard data access failure reports unavailable.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if _, err := h.source.Load(); err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			StatusResponse{Status: "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
