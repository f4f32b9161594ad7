package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

func testGame(percent int) domain.Game {
	return domain.Game{
		Identifier:      "440",
		Title:           "Team Fortress 2",
		URL:             "https://store.steampowered.com/app/440",
		ImageURL:        "https://cdn.example.com/440/header.jpg",
		Platform:        domain.PlatformSteam,
		InitialPrice:    49.99,
		DiscountedPrice: 49.99 * float64(100-percent) / 100,
		DiscountPercent: percent,
	}
}

func testBatch(games ...domain.Game) *domain.NotificationBatch {
	return &domain.NotificationBatch{
		RecipientEmail: "player@example.com",
		Subject:        "Discounted games on your wishlist!",
		Games:          games,
	}
}

func TestDiscordNotifier_SendDiscountBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		batch      *domain.NotificationBatch
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "50 percent off uses green",
			batch:      testBatch(testGame(50)),
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
		},
		{
			name:       "25 percent off uses yellow",
			batch:      testBatch(testGame(25)),
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
		},
		{
			name:       "10 percent off uses orange",
			batch:      testBatch(testGame(10)),
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "discord returns 429 rate limited",
			batch:      testBatch(testGame(50)),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			batch:      testBatch(testGame(50)),
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.SendDiscountBatch(context.Background(), tt.batch)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)
			assert.Contains(t, received.Content, "player@example.com")

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Contains(t, embed.Title, "Team Fortress 2")
			assert.Equal(t, tt.batch.Games[0].URL, embed.URL)
			require.NotNil(t, embed.Thumbnail)
			assert.Equal(t, tt.batch.Games[0].ImageURL, embed.Thumbnail.URL)
		})
	}
}

func TestDiscordNotifier_SendDiscountBatch_NoImage(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	g := testGame(30)
	g.ImageURL = ""

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendDiscountBatch(context.Background(), testBatch(g)))

	require.Len(t, received.Embeds, 1)
	assert.Nil(t, received.Embeds[0].Thumbnail)
}

func TestDiscordNotifier_SendDiscountBatch_Overflow(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	games := make([]domain.Game, 13)
	for i := range games {
		games[i] = testGame(20 + i)
	}

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendDiscountBatch(context.Background(), testBatch(games...)))

	// 10 game embeds plus one overflow summary.
	require.Len(t, received.Embeds, 11)
	assert.Contains(t, received.Embeds[10].Title, "3 more")
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	err := d.SendDiscountBatch(context.Background(), testBatch(testGame(50)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	err := d.SendDiscountBatch(context.Background(), testBatch(testGame(50)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}
