package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/game-deal-tracker/internal/api/handlers"
	"github.com/rmarques/game-deal-tracker/internal/catalog"
	"github.com/rmarques/game-deal-tracker/internal/epic"
	"github.com/rmarques/game-deal-tracker/internal/provider"
	"github.com/rmarques/game-deal-tracker/internal/steam"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

type stubSteam struct {
	search  []steam.GameDetails
	details *steam.GameDetails
	err     error
}

func (s *stubSteam) SearchByName(context.Context, string) ([]steam.GameDetails, error) {
	return s.search, s.err
}

func (s *stubSteam) FetchDetails(context.Context, int) (*steam.GameDetails, error) {
	return s.details, s.err
}

type stubEpic struct {
	search  []epic.StoreGame
	details *epic.StoreGame
	err     error
}

func (s *stubEpic) Search(context.Context, string) ([]epic.StoreGame, error) {
	return s.search, s.err
}

func (s *stubEpic) FetchDetails(context.Context, string) (*epic.StoreGame, error) {
	return s.details, s.err
}

func gameHandler(sc steam.Client, ec epic.Client) *handlers.GameHandler {
	return handlers.NewGameHandler(catalog.NewService(sc, ec, nil))
}

func getGames(t *testing.T, h echo.HandlerFunc, target string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, h(c))
	return rec
}

func TestGameHandler_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns normalized games", func(t *testing.T) {
		t.Parallel()
		h := gameHandler(&stubSteam{search: []steam.GameDetails{{
			AppID:    440,
			StoreURL: "https://store.steampowered.com/app/440",
			Name:     "Team Fortress 2",
			PriceOverview: &steam.PriceOverview{
				Initial: 4999, Final: 2499, DiscountPercent: 50,
			},
		}}}, &stubEpic{})

		rec := getGames(t, h.Search, "/api/v1/games?name=team&platform=steam", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var games []domain.Game
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
		require.Len(t, games, 1)
		assert.Equal(t, "440", games[0].Identifier)
		assert.Equal(t, 50, games[0].DiscountPercent)
	})

	t.Run("no matches is an empty array", func(t *testing.T) {
		t.Parallel()
		h := gameHandler(&stubSteam{}, &stubEpic{})

		rec := getGames(t, h.Search, "/api/v1/games?name=nothing&platform=steam", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("missing name returns 400", func(t *testing.T) {
		t.Parallel()
		h := gameHandler(&stubSteam{}, &stubEpic{})

		rec := getGames(t, h.Search, "/api/v1/games?platform=steam", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad platform returns 400", func(t *testing.T) {
		t.Parallel()
		h := gameHandler(&stubSteam{}, &stubEpic{})

		rec := getGames(t, h.Search, "/api/v1/games?name=x&platform=gog", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upstream failure returns 502 without provider details", func(t *testing.T) {
		t.Parallel()
		h := gameHandler(&stubSteam{err: provider.ErrUpstreamUnavailable}, &stubEpic{})

		rec := getGames(t, h.Search, "/api/v1/games?name=x&platform=steam", nil)
		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "storefront temporarily unavailable")
		assert.NotContains(t, rec.Body.String(), "steam")
	})
}

func TestGameHandler_Get(t *testing.T) {
	t.Parallel()

	t.Run("resolves steam game", func(t *testing.T) {
		t.Parallel()
		h := gameHandler(&stubSteam{details: &steam.GameDetails{
			AppID:    440,
			StoreURL: "https://store.steampowered.com/app/440",
			Name:     "Team Fortress 2",
		}}, &stubEpic{})

		rec := getGames(t, h.Get, "/api/v1/games/440?platform=steam",
			map[string]string{"identifier": "440"})
		require.Equal(t, http.StatusOK, rec.Code)

		var g domain.Game
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
		assert.Equal(t, "Team Fortress 2", g.Title)
		assert.False(t, g.Discounted())
	})

	t.Run("non-numeric steam id returns 400", func(t *testing.T) {
		t.Parallel()
		h := gameHandler(&stubSteam{}, &stubEpic{})

		rec := getGames(t, h.Get, "/api/v1/games/abc?platform=steam",
			map[string]string{"identifier": "abc"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing platform returns 400", func(t *testing.T) {
		t.Parallel()
		h := gameHandler(&stubSteam{}, &stubEpic{})

		rec := getGames(t, h.Get, "/api/v1/games/440",
			map[string]string{"identifier": "440"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
