// Package main implements a mock storefront server for local development.
// It serves canned responses from a JSON fixture to simulate the Steam store
// API and the Epic Games Store GraphQL catalog without hitting either upstream.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// fixture holds the canned catalog served by both storefront facades.
type fixture struct {
	Steam []steamApp        `json:"steam"`
	Epic  []json.RawMessage `json:"epic"`
}

type steamApp struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Details json.RawMessage `json:"details"`
}

type epicElement struct {
	Title string `json:"title"`
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/catalog.json", "path to catalog fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "steam_apps", len(fx.Steam), "epic_elements", len(fx.Epic))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/storesearch", steamSearchHandler(logger, fx))
	mux.HandleFunc("GET /api/appdetails", steamDetailsHandler(logger, fx))
	mux.HandleFunc("POST /graphql", epicSearchHandler(logger, fx))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock storefront server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func steamSearchHandler(logger *slog.Logger, fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := strings.ToLower(r.URL.Query().Get("term"))

		type item struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}
		var items []item
		for _, app := range fx.Steam {
			if term == "" || strings.Contains(strings.ToLower(app.Name), term) {
				items = append(items, item{ID: app.ID, Name: app.Name})
			}
		}
		if items == nil {
			items = []item{}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"items": items,
			"total": len(items),
		})
		logger.Info("steam search", "term", term, "matched", len(items))
	}
}

func steamDetailsHandler(logger *slog.Logger, fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appIDStr := r.URL.Query().Get("appids")
		appID, err := strconv.Atoi(appIDStr)
		if err != nil {
			http.Error(w, "invalid appids", http.StatusBadRequest)
			return
		}

		// The upstream keys the envelope by the stringified app id and reports
		// unknown apps with success=false rather than a non-200 status.
		envelope := map[string]any{"success": false}
		for _, app := range fx.Steam {
			if app.ID == appID {
				envelope = map[string]any{"success": true, "data": app.Details}
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{appIDStr: envelope})
		logger.Info("steam details", "app_id", appID, "found", envelope["success"])
	}
}

func epicSearchHandler(logger *slog.Logger, fx *fixture) http.HandlerFunc {
	// Pre-parse titles for keyword filtering.
	type indexedElement struct {
		raw   json.RawMessage
		title string
	}
	elements := make([]indexedElement, 0, len(fx.Epic))
	for _, raw := range fx.Epic {
		var e epicElement
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &e)
		elements = append(elements, indexedElement{raw: raw, title: strings.ToLower(e.Title)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables struct {
				Keywords string `json:"keywords"`
			} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid GraphQL request", http.StatusBadRequest)
			return
		}

		keywords := strings.ToLower(req.Variables.Keywords)
		var matched []json.RawMessage
		for _, e := range elements {
			if keywords == "" || strings.Contains(e.title, keywords) {
				matched = append(matched, e.raw)
			}
		}
		if matched == nil {
			matched = []json.RawMessage{}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"Catalog": map[string]any{
					"searchStore": map[string]any{
						"elements": matched,
					},
				},
			},
		})
		logger.Info("epic search", "keywords", keywords, "matched", len(matched))
	}
}
