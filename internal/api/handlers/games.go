// Package handlers implements HTTP handlers for the game-deal-tracker API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rmarques/game-deal-tracker/internal/catalog"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// GameHandler serves catalog search and lookup.
type GameHandler struct {
	catalog *catalog.Service
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(svc *catalog.Service) *GameHandler {
	return &GameHandler{catalog: svc}
}

// Search handles GET /api/v1/games.
//
// @Summary Search games
// @Description Searches one storefront by name and returns normalized games.
// @Tags games
// @Produce json
// @Param name query string true "Game name"
// @Param platform query string true "Storefront" Enums(steam, epic)
// @Success 200 {array} domain.Game
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/games [get]
func (h *GameHandler) Search(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
	}

	platform, ok := domain.ParsePlatform(c.QueryParam("platform"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "platform must be one of: steam, epic",
		})
	}

	games, err := h.catalog.Search(c.Request().Context(), name, platform)
	if err != nil {
		return writeError(c, err)
	}

	if games == nil {
		games = []domain.Game{}
	}
	return c.JSON(http.StatusOK, games)
}

// Get handles GET /api/v1/games/:identifier.
//
// @Summary Get a game
// @Description Resolves one game by its platform identifier.
// @Tags games
// @Produce json
// @Param identifier path string true "Platform identifier"
// @Param platform query string true "Storefront" Enums(steam, epic)
// @Success 200 {object} domain.Game
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/games/{identifier} [get]
func (h *GameHandler) Get(c echo.Context) error {
	platform, ok := domain.ParsePlatform(c.QueryParam("platform"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "platform must be one of: steam, epic",
		})
	}

	g, err := h.catalog.GetByID(c.Request().Context(), platform, c.Param("identifier"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, g)
}
