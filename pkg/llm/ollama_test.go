package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/game-deal-tracker/pkg/llm"
)

func TestOllamaBackend_Name(t *testing.T) {
	t.Parallel()
	b := llm.NewOllamaBackend("http://localhost:11434", "llama3.2")
	assert.Equal(t, "ollama", b.Name())
}

func TestOllamaBackend_Generate(t *testing.T) {
	t.Parallel()

	t.Run("successful generation", func(t *testing.T) {
		t.Parallel()

		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/generate", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"model": "llama3.2", "response": "A detailed review."}`))
		}))
		defer srv.Close()

		b := llm.NewOllamaBackend(srv.URL, "llama3.2")
		resp, err := b.Generate(context.Background(), llm.ReviewRequest("Celeste"))
		require.NoError(t, err)

		assert.Equal(t, "A detailed review.", resp.Content)
		assert.Equal(t, "llama3.2", resp.Model)
		assert.Equal(t, "llama3.2", gotBody["model"])
		assert.Equal(t, false, gotBody["stream"])
		assert.Contains(t, gotBody["prompt"], "Celeste")
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`model not loaded`))
		}))
		defer srv.Close()

		b := llm.NewOllamaBackend(srv.URL, "llama3.2")
		_, err := b.Generate(context.Background(), llm.Request{Prompt: "test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("malformed response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		b := llm.NewOllamaBackend(srv.URL, "llama3.2")
		_, err := b.Generate(context.Background(), llm.Request{Prompt: "test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing ollama response")
	})
}
