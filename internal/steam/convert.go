package steam

import (
	"strconv"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// ToGame normalizes raw Steam app details into the canonical representation.
// Steam reports prices in integer minor units and supplies the discount
// percent directly; an app without a price overview is priceless, not free
// with a discount.
func ToGame(d *GameDetails) domain.Game {
	g := domain.Game{
		Identifier: strconv.Itoa(d.AppID),
		Title:      d.Name,
		URL:        d.StoreURL,
		ImageURL:   d.HeaderImage,
		Platform:   domain.PlatformSteam,
	}

	if p := d.PriceOverview; p != nil {
		g.InitialPrice = float64(p.Initial) / 100
		g.DiscountedPrice = float64(p.Final) / 100
		g.DiscountPercent = p.DiscountPercent
	}

	return g
}

// ToGames normalizes a batch of app details.
func ToGames(details []GameDetails) []domain.Game {
	games := make([]domain.Game, 0, len(details))
	for i := range details {
		games = append(games, ToGame(&details[i]))
	}
	return games
}
