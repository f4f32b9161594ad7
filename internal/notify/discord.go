package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // 50%+ off
	colorYellow = 0xF1C40F // 20-49% off
	colorOrange = 0xE67E22 // under 20% off

	// Discord allows max 10 embeds per message.
	maxEmbeds = 10
)

// DiscordNotifier implements Notifier via Discord webhook. One message per
// batch, one embed per discounted game.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Thumbnail   *discordThumbnail   `json:"thumbnail,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordThumbnail struct {
	URL string `json:"url"`
}

// SendDiscountBatch posts the batch as a single Discord message.
func (d *DiscordNotifier) SendDiscountBatch(
	ctx context.Context,
	batch *domain.NotificationBatch,
) error {
	limit := min(len(batch.Games), maxEmbeds)

	embeds := make([]discordEmbed, 0, limit+1)
	for i := range limit {
		embeds = append(embeds, buildEmbed(&batch.Games[i]))
	}

	if len(batch.Games) > maxEmbeds {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more discounted games", len(batch.Games)-maxEmbeds),
			Color:       colorYellow,
			Description: "Check your wishlist for the full list.",
		})
	}

	payload := discordWebhookPayload{
		Content: fmt.Sprintf("%s (%s)", batch.Subject, batch.RecipientEmail),
		Embeds:  embeds,
	}
	return d.post(ctx, payload)
}

func buildEmbed(g *domain.Game) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("%d%% off: %s", g.DiscountPercent, g.Title),
		URL:   g.URL,
		Color: discountColor(g.DiscountPercent),
		Fields: []discordEmbedField{
			{Name: "Now", Value: fmt.Sprintf("%.2f", g.DiscountedPrice), Inline: true},
			{Name: "Was", Value: fmt.Sprintf("%.2f", g.InitialPrice), Inline: true},
			{Name: "Store", Value: string(g.Platform), Inline: true},
		},
	}

	if g.ImageURL != "" {
		embed.Thumbnail = &discordThumbnail{URL: g.ImageURL}
	}

	return embed
}

func discountColor(percent int) int {
	switch {
	case percent >= 50:
		return colorGreen
	case percent >= 20:
		return colorYellow
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
