// Package store defines the datastore abstraction for game-deal-tracker.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables fake-backed testing without a running
// database.
package store

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// Store defines all data access operations for game-deal-tracker.
type Store interface {
	// Wishlist. AddWishlistEntry returns ErrConflict when the composite key
	// already exists; the insert itself is the uniqueness check.
	AddWishlistEntry(ctx context.Context, e *domain.WishlistEntry) error
	RemoveWishlistEntry(ctx context.Context, key domain.WishlistKey) error
	ListWishlistByUser(ctx context.Context, userID uuid.UUID) ([]domain.WishlistEntry, error)

	// Reviews. CreateReview returns ErrConflict when a review already exists
	// for the normalized game name; UpdateReview always clears the
	// AI-generated flag.
	CreateReview(ctx context.Context, r *domain.Review) error
	GetReviewByGameName(ctx context.Context, normalizedName string) (*domain.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, content string) (*domain.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error

	// Users. CreateUser returns ErrConflict when the email is taken.
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListNotifiableUsers(ctx context.Context) ([]domain.User, error)

	// Search history.
	SaveGameSearch(ctx context.Context, s *domain.GameSearch) error
	ListGameSearchesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.GameSearch, error)

	// Migrations.
	Migrate(ctx context.Context) error

	// Health.
	Ping(ctx context.Context) error
}
