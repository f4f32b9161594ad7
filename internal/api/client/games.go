package client

import (
	"context"
	"net/url"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// SearchGames searches a storefront catalog by game name.
func (c *Client) SearchGames(ctx context.Context, platform, name string) ([]domain.Game, error) {
	q := url.Values{}
	q.Set("platform", platform)
	q.Set("name", name)

	var games []domain.Game
	if err := c.get(ctx, "/api/v1/games?"+q.Encode(), &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GetGame fetches current storefront state for one game by its
// platform-specific identifier.
func (c *Client) GetGame(ctx context.Context, platform, identifier string) (*domain.Game, error) {
	q := url.Values{}
	q.Set("platform", platform)

	var g domain.Game
	if err := c.get(ctx, "/api/v1/games/"+url.PathEscape(identifier)+"?"+q.Encode(), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// TriggerScan runs a discount scan across all notifiable users and blocks
// until it completes.
func (c *Client) TriggerScan(ctx context.Context) error {
	return c.post(ctx, "/api/v1/scan", nil, nil)
}
