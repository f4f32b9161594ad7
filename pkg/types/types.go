// Package domain defines the core business types for game-deal-tracker.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Platform identifies the storefront a game belongs to.
type Platform string

// Platform constants.
const (
	PlatformSteam Platform = "steam"
	PlatformEpic  Platform = "epic"
)

// ParsePlatform converts a string into a Platform, reporting whether the
// value names a known storefront.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(s)) {
	case PlatformSteam:
		return PlatformSteam, true
	case PlatformEpic:
		return PlatformEpic, true
	default:
		return "", false
	}
}

// Game is the canonical, provider-agnostic representation of a storefront
// game. It is produced fresh on every normalization call and never persisted
// or cached; prices are decimal currency, not minor units.
type Game struct {
	Identifier      string   `json:"identifier"`
	Title           string   `json:"title"`
	URL             string   `json:"url,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	Platform        Platform `json:"platform"`
	InitialPrice    float64  `json:"initial_price"`
	DiscountedPrice float64  `json:"discounted_price"`
	DiscountPercent int      `json:"discount_percent"`
}

// Discounted reports whether the game currently carries an active discount.
func (g *Game) Discounted() bool {
	return g.DiscountPercent > 0
}

// WishlistKey is the composite natural key of a wishlist membership. It is
// unique and immutable once created.
type WishlistKey struct {
	UserID             uuid.UUID `json:"user_id"`
	Platform           Platform  `json:"platform"`
	PlatformIdentifier string    `json:"platform_identifier"`
}

// WishlistEntry records one user's interest in one game on one storefront.
// Entries are either present or absent; there is no update operation.
type WishlistEntry struct {
	WishlistKey
	CreatedAt time.Time `json:"created_at"`
}

// Review is a stored game review, human- or AI-authored. GameName holds the
// normalized form (see NormalizeGameName); at most one review exists per
// normalized name.
type Review struct {
	ID          uuid.UUID `json:"id"          db:"id"`
	GameName    string    `json:"game_name"   db:"game_name"`
	Content     string    `json:"content"     db:"content"`
	AIGenerated bool      `json:"ai_generated" db:"ai_generated"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}

// NormalizeGameName lower-cases and trims a game title, producing the review
// deduplication key.
func NormalizeGameName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// User is the identity projection this service consumes. Account management
// and credential handling live elsewhere.
type User struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	EmailVerified        bool      `json:"email_verified"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
}

// GameSearch records one catalog search performed by a user.
type GameSearch struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	GameName  string    `json:"game_name"`
	Platform  Platform  `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationBatch is the transient payload handed to the notification
// dispatcher: all discounted wishlist games for one recipient, built at most
// once per user per scan run.
type NotificationBatch struct {
	RecipientEmail string
	Subject        string
	Games          []Game
}
