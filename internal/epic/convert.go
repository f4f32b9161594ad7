package epic

import (
	"errors"
	"math"
	"strings"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

const storePageBase = "https://store.epicgames.com/pt-BR/p/"

const (
	categoryTesting = "testing"
	categoryAddons  = "addons"
	pageTypeProduct = "productHome"
)

// ErrNoStorePage reports a catalog element that passed availability filtering
// but has no resolvable store page slug. The filter and the slug resolver
// check overlapping conditions; if they ever drift apart this surfaces the
// defect loudly instead of producing a broken URL.
var ErrNoStorePage = errors.New("catalog element has no product home page slug")

// Available reports whether a catalog element should be visible in search
// results. Elements tagged "testing" are never shown; "addons" are always
// shown; everything else needs a productHome page mapping.
func Available(g *StoreGame) bool {
	for _, c := range g.Categories {
		switch c.Path {
		case categoryTesting:
			return false
		case categoryAddons:
			return true
		}
	}

	for _, m := range g.CatalogNs.Mappings {
		if m.PageType == pageTypeProduct {
			return true
		}
	}
	return false
}

// FilterAvailable drops the catalog elements that Available rejects.
func FilterAvailable(games []StoreGame) []StoreGame {
	kept := make([]StoreGame, 0, len(games))
	for i := range games {
		if Available(&games[i]) {
			kept = append(kept, games[i])
		}
	}
	return kept
}

// ToGame normalizes a raw catalog element into the canonical representation.
// Prices arrive in integer minor units; the discount percent is computed, not
// trusted, forced to zero when the prices are equal or the original price is
// zero, and clamped to [0, 100] so free, unpriced, and malformed items never
// produce a garbage percent. The title doubles as the identifier because the
// catalog exposes no stable numeric id.
func ToGame(g *StoreGame) (domain.Game, error) {
	slug, err := storeSlug(g)
	if err != nil {
		return domain.Game{}, err
	}

	game := domain.Game{
		Identifier: g.Title,
		Title:      g.Title,
		URL:        storePageBase + slug,
		Platform:   domain.PlatformEpic,
	}

	if len(g.KeyImages) > 0 {
		game.ImageURL = g.KeyImages[0].URL
	}

	if g.Price != nil {
		initial := float64(g.Price.TotalPrice.OriginalPrice) / 100
		discounted := float64(g.Price.TotalPrice.DiscountPrice) / 100
		game.InitialPrice = initial
		game.DiscountedPrice = discounted
		if initial != discounted && initial != 0 {
			game.DiscountPercent = clampPercent(math.Round(100 - (discounted*100)/initial))
		}
	}

	return game, nil
}

// clampPercent bounds a computed discount to [0, 100] so malformed catalog
// prices can never leak an out-of-range percent.
func clampPercent(p float64) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return int(p)
}

// storeSlug resolves the canonical store page slug: addons use their own URL
// slug, then the product slug with path separators flattened, then the first
// productHome page mapping.
func storeSlug(g *StoreGame) (string, error) {
	for _, c := range g.Categories {
		if c.Path == categoryAddons {
			return g.URLSlug, nil
		}
	}

	if g.ProductSlug != "" {
		return strings.ReplaceAll(g.ProductSlug, "/", "--"), nil
	}

	for _, m := range g.CatalogNs.Mappings {
		if m.PageType == pageTypeProduct {
			return m.PageSlug, nil
		}
	}
	return "", ErrNoStorePage
}
