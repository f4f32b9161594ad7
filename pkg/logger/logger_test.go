package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/game-deal-tracker/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "info", level: "info", want: slog.LevelInfo},
		{name: "warn", level: "warn", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
		{name: "empty defaults to info", level: "", want: slog.LevelInfo},
		{name: "unknown defaults to info", level: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.level))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	require.NotNil(t, logger.New("info", "text"))
}

func TestNewWithWriter_Formats(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger.NewWithWriter(&buf, "info", "text").Info("scan complete", "users", 3)

		out := buf.String()
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "scan complete")
		assert.Contains(t, out, "users=3")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger.NewWithWriter(&buf, "info", "json").Info("scan complete", "users", 3)

		out := buf.String()
		assert.Contains(t, out, `"level":"INFO"`)
		assert.Contains(t, out, `"msg":"scan complete"`)
		assert.Contains(t, out, `"users":3`)
	})

	t.Run("unknown format falls back to text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger.NewWithWriter(&buf, "info", "logfmt").Info("scan complete")

		assert.Contains(t, buf.String(), "level=INFO")
	})
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   string
		logFunc func(*slog.Logger)
		want    bool
	}{
		{
			name:    "debug visible at debug level",
			level:   "debug",
			logFunc: func(l *slog.Logger) { l.Debug("resolving game") },
			want:    true,
		},
		{
			name:    "debug suppressed at info level",
			level:   "info",
			logFunc: func(l *slog.Logger) { l.Debug("resolving game") },
			want:    false,
		},
		{
			name:    "info suppressed at warn level",
			level:   "warn",
			logFunc: func(l *slog.Logger) { l.Info("resolving game") },
			want:    false,
		},
		{
			name:    "error visible at warn level",
			level:   "warn",
			logFunc: func(l *slog.Logger) { l.Error("storefront unreachable") },
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.logFunc(logger.NewWithWriter(&buf, tt.level, "text"))

			if tt.want {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
