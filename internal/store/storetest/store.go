// Package storetest provides an in-memory Store implementation for tests.
// It honors the same error taxonomy as the Postgres store.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rmarques/game-deal-tracker/internal/store"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// Store is an in-memory store.Store. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]domain.User
	wishlist map[domain.WishlistKey]domain.WishlistEntry
	reviews  map[uuid.UUID]domain.Review
	searches []domain.GameSearch

	// Err, when set, is returned by every method. Lets tests simulate a
	// failing datastore.
	Err error
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]domain.User),
		wishlist: make(map[domain.WishlistKey]domain.WishlistEntry),
		reviews:  make(map[uuid.UUID]domain.Review),
	}
}

func (s *Store) AddWishlistEntry(_ context.Context, e *domain.WishlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.wishlist[e.WishlistKey]; ok {
		return fmt.Errorf("wishlist entry: %w", store.ErrConflict)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.wishlist[e.WishlistKey] = *e
	return nil
}

func (s *Store) RemoveWishlistEntry(_ context.Context, key domain.WishlistKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.wishlist[key]; !ok {
		return fmt.Errorf("wishlist entry: %w", store.ErrNotFound)
	}
	delete(s.wishlist, key)
	return nil
}

func (s *Store) ListWishlistByUser(_ context.Context, userID uuid.UUID) ([]domain.WishlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var entries []domain.WishlistEntry
	for _, e := range s.wishlist {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *Store) CreateReview(_ context.Context, r *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	for _, existing := range s.reviews {
		if existing.GameName == r.GameName {
			return fmt.Errorf("review for %q: %w", r.GameName, store.ErrConflict)
		}
	}

	r.ID = uuid.New()
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	s.reviews[r.ID] = *r
	return nil
}

func (s *Store) GetReviewByGameName(_ context.Context, normalizedName string) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, r := range s.reviews {
		if r.GameName == normalizedName {
			out := r
			return &out, nil
		}
	}
	return nil, fmt.Errorf("review for %q: %w", normalizedName, store.ErrNotFound)
}

func (s *Store) UpdateReview(_ context.Context, id uuid.UUID, content string) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	r, ok := s.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %s: %w", id, store.ErrNotFound)
	}
	r.Content = content
	r.AIGenerated = false
	r.UpdatedAt = time.Now()
	s.reviews[id] = r
	out := r
	return &out, nil
}

func (s *Store) DeleteReview(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.reviews[id]; !ok {
		return fmt.Errorf("review %s: %w", id, store.ErrNotFound)
	}
	delete(s.reviews, id)
	return nil
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("user %q: %w", u.Email, store.ErrConflict)
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, store.ErrNotFound)
	}
	out := u
	return &out, nil
}

func (s *Store) ListNotifiableUsers(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var users []domain.User
	for _, u := range s.users {
		if u.EmailVerified && u.NotificationsEnabled {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Email < users[j].Email
	})
	return users, nil
}

func (s *Store) SaveGameSearch(_ context.Context, gs *domain.GameSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	gs.ID = uuid.New()
	gs.CreatedAt = time.Now()
	s.searches = append(s.searches, *gs)
	return nil
}

func (s *Store) ListGameSearchesByUser(_ context.Context, userID uuid.UUID, limit int) ([]domain.GameSearch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var out []domain.GameSearch
	for i := len(s.searches) - 1; i >= 0; i-- {
		if s.searches[i].UserID == userID {
			out = append(out, s.searches[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *Store) Migrate(context.Context) error { return s.Err }

func (s *Store) Ping(context.Context) error { return s.Err }
