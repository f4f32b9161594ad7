package client

import (
	"context"
	"net/url"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// GetReview returns the review stored for a game name, if any.
func (c *Client) GetReview(ctx context.Context, gameName string) (*domain.Review, error) {
	var r domain.Review
	if err := c.get(ctx, "/api/v1/reviews/"+url.PathEscape(gameName), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReview stores a human-authored review for a game.
func (c *Client) CreateReview(ctx context.Context, gameName, content string) (*domain.Review, error) {
	var created domain.Review
	req := map[string]string{"game_name": gameName, "content": content}
	if err := c.post(ctx, "/api/v1/reviews", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GenerateReview asks the server to produce an AI-authored review for a game
// that has none yet.
func (c *Client) GenerateReview(ctx context.Context, gameName string) (*domain.Review, error) {
	var created domain.Review
	req := map[string]string{"game_name": gameName}
	if err := c.post(ctx, "/api/v1/reviews/generate", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateReview replaces a review's content by ID.
func (c *Client) UpdateReview(ctx context.Context, id, content string) (*domain.Review, error) {
	var updated domain.Review
	req := map[string]string{"content": content}
	if err := c.put(ctx, "/api/v1/reviews/"+id, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteReview deletes a review by ID.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/reviews/"+id, nil)
}
