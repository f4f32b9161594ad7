// Package epic provides an Epic Games Store client backed by the public
// GraphQL catalog, abstracted behind an interface for testability.
package epic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rmarques/game-deal-tracker/internal/metrics"
	"github.com/rmarques/game-deal-tracker/internal/provider"
)

const (
	defaultGraphQLURL = "https://graphql.epicgames.com/graphql"
	defaultLocale     = "pt-BR"
	defaultCountry    = "BR"
)

// searchStoreQuery is the catalog search issued for both search and detail
// lookups. Detail lookups reuse this query with the identifier as keyword and
// take the first match; the store exposes no direct id lookup.
const searchStoreQuery = `
query searchStoreQuery($keyword: String, $locale: String!, $country: String!) {
  Catalog {
    searchStore(
      keywords: $keyword,
      locale: $locale,
      country: $country,
      sortBy: "relevancy"
      sortDir: "DESC"
      start: 0,
      count: 10
    ) {
      elements {
        title
        productSlug
        urlSlug
        keyImages {
          url
        }
        categories {
          path
        }
        tags {
          name
        }
        price(country: $country) {
          totalPrice {
            discountPrice
            originalPrice
          }
        }
        catalogNs {
          mappings {
            pageSlug
            pageType
          }
        }
      }
    }
  }
}`

// Client defines the interface for the Epic Games Store.
type Client interface {
	Search(ctx context.Context, keyword string) ([]StoreGame, error)
	FetchDetails(ctx context.Context, identifier string) (*StoreGame, error)
}

// GraphQLClient implements Client against the public GraphQL catalog.
type GraphQLClient struct {
	endpoint    string
	locale      string
	country     string
	client      *http.Client
	rateLimiter *provider.RateLimiter
}

// Option configures the GraphQLClient.
type Option func(*GraphQLClient)

// WithEndpoint overrides the GraphQL endpoint.
func WithEndpoint(u string) Option {
	return func(c *GraphQLClient) {
		c.endpoint = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GraphQLClient) {
		c.client = hc
	}
}

// WithLocale overrides the storefront locale and country.
func WithLocale(locale, country string) Option {
	return func(c *GraphQLClient) {
		c.locale = locale
		c.country = country
	}
}

// WithRateLimiter injects a rate limiter shared across storefront calls.
func WithRateLimiter(r *provider.RateLimiter) Option {
	return func(c *GraphQLClient) {
		c.rateLimiter = r
	}
}

// NewGraphQLClient creates an Epic Games Store catalog client.
func NewGraphQLClient(opts ...Option) *GraphQLClient {
	c := &GraphQLClient{
		endpoint: defaultGraphQLURL,
		locale:   defaultLocale,
		country:  defaultCountry,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries the catalog by keyword and returns the raw elements.
// Availability filtering is the normalizer's concern, not the transport's.
func (c *GraphQLClient) Search(ctx context.Context, keyword string) ([]StoreGame, error) {
	var resp searchResponse
	if err := c.query(ctx, keyword, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Catalog.SearchStore.Elements, nil
}

// FetchDetails looks up a single game by identifier. The catalog has no
// direct id lookup, so this reuses the search path and takes the first match.
func (c *GraphQLClient) FetchDetails(ctx context.Context, identifier string) (*StoreGame, error) {
	elements, err := c.Search(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: no catalog match for %q", provider.ErrUpstreamUnavailable, identifier)
	}
	return &elements[0], nil
}

func (c *GraphQLClient) query(ctx context.Context, keyword string, dst any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, provider.ErrDailyLimitReached) {
				metrics.ProviderDailyLimitHits.Inc()
			}
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	metrics.ProviderCallsTotal.WithLabelValues("epic").Inc()

	reqBody := graphqlRequest{
		Query: searchStoreQuery,
		Variables: map[string]any{
			"keyword": keyword,
			"locale":  c.locale,
			"country": c.country,
		},
		OperationName: "searchStoreQuery",
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("epic").Inc()
		return fmt.Errorf("%w: %v", provider.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("epic").Inc()
		return fmt.Errorf("%w: reading response body: %v", provider.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderErrorsTotal.WithLabelValues("epic").Inc()
		return fmt.Errorf("%w: epic returned status %d", provider.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, dst); err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("epic").Inc()
		return fmt.Errorf("%w: parsing response: %v", provider.ErrUpstreamUnavailable, err)
	}
	return nil
}
