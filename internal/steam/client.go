// Package steam provides a Steam storefront client abstracted behind an
// interface for testability.
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rmarques/game-deal-tracker/internal/metrics"
	"github.com/rmarques/game-deal-tracker/internal/provider"
)

const (
	defaultSearchURL  = "https://store.steampowered.com/api/storesearch"
	defaultDetailsURL = "https://store.steampowered.com/api/appdetails"
	defaultStoreURL   = "https://store.steampowered.com/app/"
	defaultCountry    = "br"
	defaultLanguage   = "portuguese"
)

// Client defines the interface for the Steam storefront.
type Client interface {
	SearchByName(ctx context.Context, name string) ([]GameDetails, error)
	FetchDetails(ctx context.Context, appID int) (*GameDetails, error)
}

// HTTPClient implements Client against the public Steam store API.
type HTTPClient struct {
	searchURL   string
	detailsURL  string
	storeURL    string
	country     string
	language    string
	client      *http.Client
	rateLimiter *provider.RateLimiter
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithSearchURL overrides the storesearch endpoint.
func WithSearchURL(u string) Option {
	return func(c *HTTPClient) {
		c.searchURL = u
	}
}

// WithDetailsURL overrides the appdetails endpoint.
func WithDetailsURL(u string) Option {
	return func(c *HTTPClient) {
		c.detailsURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = hc
	}
}

// WithCountry overrides the storefront country code.
func WithCountry(cc string) Option {
	return func(c *HTTPClient) {
		c.country = cc
	}
}

// WithRateLimiter injects a rate limiter shared across storefront calls.
// When set, every request goes through Wait() first.
func WithRateLimiter(r *provider.RateLimiter) Option {
	return func(c *HTTPClient) {
		c.rateLimiter = r
	}
}

// NewHTTPClient creates a Steam store API client.
func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		searchURL:  defaultSearchURL,
		detailsURL: defaultDetailsURL,
		storeURL:   defaultStoreURL,
		country:    defaultCountry,
		language:   defaultLanguage,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchByName searches the storefront and resolves full details for every
// match, since the search payload carries no pricing.
func (c *HTTPClient) SearchByName(ctx context.Context, name string) ([]GameDetails, error) {
	params := url.Values{}
	params.Set("term", name)
	params.Set("cc", c.country)
	params.Set("l", c.language)

	var resp SearchResponse
	if err := c.getJSON(ctx, c.searchURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	games := make([]GameDetails, 0, len(resp.Items))
	for _, item := range resp.Items {
		details, err := c.FetchDetails(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching details for app %d: %w", item.ID, err)
		}
		games = append(games, *details)
	}
	return games, nil
}

// FetchDetails retrieves per-app details. The response body is keyed by the
// stringified app id.
func (c *HTTPClient) FetchDetails(ctx context.Context, appID int) (*GameDetails, error) {
	params := url.Values{}
	params.Set("appids", strconv.Itoa(appID))
	params.Set("cc", c.country)
	params.Set("l", c.language)

	var wrapper map[string]appDetailsEnvelope
	if err := c.getJSON(ctx, c.detailsURL+"?"+params.Encode(), &wrapper); err != nil {
		return nil, err
	}

	envelope, ok := wrapper[strconv.Itoa(appID)]
	if !ok || !envelope.Success || envelope.Data == nil {
		return nil, fmt.Errorf("%w: steam app %d has no details", provider.ErrUpstreamUnavailable, appID)
	}

	details := envelope.Data
	details.AppID = appID
	details.StoreURL = c.storeURL + strconv.Itoa(appID)
	return details, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, u string, dst any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, provider.ErrDailyLimitReached) {
				metrics.ProviderDailyLimitHits.Inc()
			}
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	metrics.ProviderCallsTotal.WithLabelValues("steam").Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("steam").Inc()
		return fmt.Errorf("%w: %v", provider.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("steam").Inc()
		return fmt.Errorf("%w: reading response body: %v", provider.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderErrorsTotal.WithLabelValues("steam").Inc()
		return fmt.Errorf("%w: steam returned status %d", provider.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("steam").Inc()
		return fmt.Errorf("%w: parsing response: %v", provider.ErrUpstreamUnavailable, err)
	}
	return nil
}
