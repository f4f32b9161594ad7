// Package identity abstracts who is making a request and which users may be
// notified. Session issuance and verification live outside this service; the
// authenticated user id arrives via request context.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rmarques/game-deal-tracker/internal/store"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// ErrNoUser reports a request with no authenticated user in its context.
var ErrNoUser = errors.New("no authenticated user")

// Provider resolves the current user and the notification-eligible set.
type Provider interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
	UsersEligibleForNotification(ctx context.Context) ([]domain.User, error)
}

type ctxKey struct{}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserIDFromContext extracts the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok
}

// StoreProvider implements Provider against the datastore.
type StoreProvider struct {
	store store.Store
}

// NewStoreProvider creates a store-backed identity provider.
func NewStoreProvider(st store.Store) *StoreProvider {
	return &StoreProvider{store: st}
}

// CurrentUser loads the user identified by the request context.
func (p *StoreProvider) CurrentUser(ctx context.Context) (*domain.User, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUser
	}
	return p.store.GetUser(ctx, id)
}

// UsersEligibleForNotification returns users with a verified email who have
// notifications enabled.
func (p *StoreProvider) UsersEligibleForNotification(ctx context.Context) ([]domain.User, error) {
	return p.store.ListNotifiableUsers(ctx)
}
