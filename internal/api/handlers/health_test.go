package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/game-deal-tracker/internal/api/handlers"
	"github.com/rmarques/game-deal-tracker/internal/store/storetest"
)

func TestHealthHandler_Healthz(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(storetest.New())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Healthz(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestHealthHandler_Readyz(t *testing.T) {
	t.Parallel()

	t.Run("ready when store pings", func(t *testing.T) {
		t.Parallel()
		h := handlers.NewHealthHandler(storetest.New())

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
		rec := httptest.NewRecorder()
		require.NoError(t, h.Readyz(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unavailable when store is down", func(t *testing.T) {
		t.Parallel()
		st := storetest.New()
		st.Err = errors.New("db down")
		h := handlers.NewHealthHandler(st)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
		rec := httptest.NewRecorder()
		require.NoError(t, h.Readyz(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
