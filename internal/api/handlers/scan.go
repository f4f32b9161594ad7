package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Scanner defines the interface for triggering a discount scan.
type Scanner interface {
	RunScan(ctx context.Context) error
}

// ScanHandler handles manual discount scan trigger requests.
type ScanHandler struct {
	scanner Scanner
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(s Scanner) *ScanHandler {
	return &ScanHandler{scanner: s}
}

// Trigger handles POST /api/v1/scan.
//
// @Summary Trigger a discount scan
// @Description Runs the full scan pipeline out of schedule: re-resolve every
// @Description notifiable user's wishlist and dispatch discount batches.
// @Tags scan
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/scan [post]
func (h *ScanHandler) Trigger(c echo.Context) error {
	if err := h.scanner.RunScan(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "scan failed: " + err.Error(),
		})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "scan completed"})
}
