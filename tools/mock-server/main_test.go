package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestFixture(t *testing.T) *fixture {
	t.Helper()
	path := filepath.Join("testdata", "catalog.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return &fx
}

func TestLoadFixture(t *testing.T) {
	fx := loadTestFixture(t)
	if len(fx.Steam) == 0 {
		t.Fatal("expected steam apps in fixture")
	}
	if len(fx.Epic) == 0 {
		t.Fatal("expected epic elements in fixture")
	}
}

func TestSteamSearchHandler_FiltersByTerm(t *testing.T) {
	handler := steamSearchHandler(testLogger(), loadTestFixture(t))
	req := httptest.NewRequest(http.MethodGet, "/api/storesearch?term=portal", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Items []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("total=%d, want 2", resp.Total)
	}
	for _, item := range resp.Items {
		if !strings.Contains(strings.ToLower(item.Name), "portal") {
			t.Errorf("unexpected match %q", item.Name)
		}
	}
}

func TestSteamDetailsHandler_KnownApp(t *testing.T) {
	handler := steamDetailsHandler(testLogger(), loadTestFixture(t))
	req := httptest.NewRequest(http.MethodGet, "/api/appdetails?appids=400", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp map[string]struct {
		Success bool `json:"success"`
		Data    struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	envelope, ok := resp["400"]
	if !ok {
		t.Fatal("expected envelope keyed by app id")
	}
	if !envelope.Success {
		t.Error("expected success=true")
	}
	if envelope.Data.Name != "Portal" {
		t.Errorf("name=%q, want Portal", envelope.Data.Name)
	}
}

func TestSteamDetailsHandler_UnknownApp(t *testing.T) {
	handler := steamDetailsHandler(testLogger(), loadTestFixture(t))
	req := httptest.NewRequest(http.MethodGet, "/api/appdetails?appids=99999", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["99999"].Success {
		t.Error("expected success=false for unknown app")
	}
}

func TestEpicSearchHandler_FiltersByKeywords(t *testing.T) {
	handler := epicSearchHandler(testLogger(), loadTestFixture(t))
	body := strings.NewReader(`{"variables":{"keywords":"alan wake"}}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp struct {
		Data struct {
			Catalog struct {
				SearchStore struct {
					Elements []struct {
						Title string `json:"title"`
					} `json:"elements"`
				} `json:"searchStore"`
			} `json:"Catalog"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	elements := resp.Data.Catalog.SearchStore.Elements
	if len(elements) != 1 {
		t.Fatalf("matched=%d, want 1", len(elements))
	}
	if elements[0].Title != "Alan Wake 2" {
		t.Errorf("title=%q, want Alan Wake 2", elements[0].Title)
	}
}

func TestEpicSearchHandler_EmptyKeywordsReturnsAll(t *testing.T) {
	fx := loadTestFixture(t)
	handler := epicSearchHandler(testLogger(), fx)
	body := strings.NewReader(`{"variables":{"keywords":""}}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp struct {
		Data struct {
			Catalog struct {
				SearchStore struct {
					Elements []json.RawMessage `json:"elements"`
				} `json:"searchStore"`
			} `json:"Catalog"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := len(resp.Data.Catalog.SearchStore.Elements); got != len(fx.Epic) {
		t.Errorf("matched=%d, want %d", got, len(fx.Epic))
	}
}
