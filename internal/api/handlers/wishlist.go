package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rmarques/game-deal-tracker/internal/identity"
	"github.com/rmarques/game-deal-tracker/internal/store"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// GameResolver resolves current storefront state for one tracked game.
type GameResolver interface {
	GetByID(ctx context.Context, platform domain.Platform, identifier string) (*domain.Game, error)
}

// WishlistHandler manages the current user's tracked games.
type WishlistHandler struct {
	store    store.Store
	resolver GameResolver
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(s store.Store, r GameResolver) *WishlistHandler {
	return &WishlistHandler{store: s, resolver: r}
}

// wishlistRequest is the add/remove request body.
type wishlistRequest struct {
	Platform           string `json:"platform"`
	PlatformIdentifier string `json:"platform_identifier"`
}

func (r *wishlistRequest) key(c echo.Context) (domain.WishlistKey, bool) {
	userID, ok := identity.UserIDFromContext(c.Request().Context())
	if !ok {
		return domain.WishlistKey{}, false
	}
	platform, ok := domain.ParsePlatform(r.Platform)
	if !ok || r.PlatformIdentifier == "" {
		return domain.WishlistKey{}, false
	}
	return domain.WishlistKey{
		UserID:             userID,
		Platform:           platform,
		PlatformIdentifier: r.PlatformIdentifier,
	}, true
}

// wishlistItem is one tracked game with its live storefront state. Game is
// omitted when the storefront lookup fails; the entry itself is still listed.
type wishlistItem struct {
	domain.WishlistEntry
	Game *domain.Game `json:"game,omitempty"`
}

// List handles GET /api/v1/wishlist.
//
// @Summary List wishlist entries
// @Description Returns all games tracked by the current user, with current storefront pricing.
// @Tags wishlist
// @Produce json
// @Success 200 {array} wishlistItem
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/wishlist [get]
func (h *WishlistHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := identity.UserIDFromContext(ctx)

	entries, err := h.store.ListWishlistByUser(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}

	items := make([]wishlistItem, 0, len(entries))
	for _, entry := range entries {
		item := wishlistItem{WishlistEntry: entry}
		if g, err := h.resolver.GetByID(ctx, entry.Platform, entry.PlatformIdentifier); err == nil {
			item.Game = g
		} else {
			c.Logger().Warnf("resolving wishlist entry %s/%s: %v",
				entry.Platform, entry.PlatformIdentifier, err)
		}
		items = append(items, item)
	}
	return c.JSON(http.StatusOK, items)
}

// Add handles POST /api/v1/wishlist.
//
// @Summary Track a game
// @Description Adds a game to the current user's wishlist.
// @Tags wishlist
// @Accept json
// @Produce json
// @Param entry body wishlistRequest true "Game to track"
// @Success 201 {object} domain.WishlistEntry
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/wishlist [post]
func (h *WishlistHandler) Add(c echo.Context) error {
	var req wishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}

	key, ok := req.key(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "platform and platform_identifier are required",
		})
	}

	entry := &domain.WishlistEntry{WishlistKey: key}
	if err := h.store.AddWishlistEntry(c.Request().Context(), entry); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, entry)
}

// Remove handles DELETE /api/v1/wishlist.
//
// @Summary Untrack a game
// @Description Removes a game from the current user's wishlist.
// @Tags wishlist
// @Accept json
// @Produce json
// @Param entry body wishlistRequest true "Game to untrack"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/wishlist [delete]
func (h *WishlistHandler) Remove(c echo.Context) error {
	var req wishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}

	key, ok := req.key(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "platform and platform_identifier are required",
		})
	}

	if err := h.store.RemoveWishlistEntry(c.Request().Context(), key); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
