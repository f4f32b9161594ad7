package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		method    string
		path      string
		status    int
		reqID     string
		wantInLog []string
	}{
		{
			name:   "wishlist fetch gets a generated request id",
			method: http.MethodGet,
			path:   "/api/v1/wishlist",
			status: http.StatusOK,
			wantInLog: []string{
				"http request",
				"method=GET",
				"path=/api/v1/wishlist",
				"status=200",
				"elapsed_ms=",
				"request_id=",
			},
		},
		{
			name:   "review creation logs the 201",
			method: http.MethodPost,
			path:   "/api/v1/reviews",
			status: http.StatusCreated,
			wantInLog: []string{
				"method=POST",
				"status=201",
			},
		},
		{
			name:   "caller-supplied request id is kept",
			method: http.MethodPost,
			path:   "/api/v1/scan",
			status: http.StatusAccepted,
			reqID:  "gdt-cli-7f3a",
			wantInLog: []string{
				"request_id=gdt-cli-7f3a",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.reqID != "" {
				req.Header.Set(requestIDHeader, tt.reqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := RequestLog(log)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})
			require.NoError(t, h(c))

			out := buf.String()
			for _, want := range tt.wantInLog {
				assert.Contains(t, out, want)
			}

			respID := rec.Header().Get(requestIDHeader)
			require.NotEmpty(t, respID)
			if tt.reqID != "" {
				assert.Equal(t, tt.reqID, respID)
			}
			assert.Equal(t, respID, c.Get("request_id"))
		})
	}
}
