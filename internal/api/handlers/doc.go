package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rmarques/game-deal-tracker/internal/catalog"
	"github.com/rmarques/game-deal-tracker/internal/provider"
	"github.com/rmarques/game-deal-tracker/internal/store"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// writeError maps domain errors onto HTTP statuses. Upstream provider
// failures are reported generically so storefront internals never leak to
// clients.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, catalog.ErrUnknownPlatform), errors.Is(err, catalog.ErrBadIdentifier):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, provider.ErrUpstreamUnavailable):
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "storefront temporarily unavailable",
		})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
