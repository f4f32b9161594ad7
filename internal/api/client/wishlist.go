package client

import (
	"context"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// wishlistRequest contains the fields the API accepts for add/remove.
type wishlistRequest struct {
	Platform           string `json:"platform"`
	PlatformIdentifier string `json:"platform_identifier"`
}

// WishlistItem is one tracked game with its live storefront state. Game is
// nil when the server could not reach the storefront for that entry.
type WishlistItem struct {
	domain.WishlistEntry
	Game *domain.Game `json:"game,omitempty"`
}

// ListWishlist returns the authenticated user's wishlist entries with
// current storefront pricing.
func (c *Client) ListWishlist(ctx context.Context) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := c.get(ctx, "/api/v1/wishlist", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddWishlistEntry tracks a game on the authenticated user's wishlist.
func (c *Client) AddWishlistEntry(ctx context.Context, platform, identifier string) (*domain.WishlistEntry, error) {
	var created domain.WishlistEntry
	req := wishlistRequest{Platform: platform, PlatformIdentifier: identifier}
	if err := c.post(ctx, "/api/v1/wishlist", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RemoveWishlistEntry stops tracking a game on the authenticated user's wishlist.
func (c *Client) RemoveWishlistEntry(ctx context.Context, platform, identifier string) error {
	req := wishlistRequest{Platform: platform, PlatformIdentifier: identifier}
	return c.del(ctx, "/api/v1/wishlist", req)
}
