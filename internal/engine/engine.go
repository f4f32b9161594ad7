// Package engine runs the recurring discount scan: for every notifiable user,
// re-resolve each wishlist entry against its storefront, keep the discounted
// games, and dispatch at most one consolidated notification per user per run.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rmarques/game-deal-tracker/internal/identity"
	"github.com/rmarques/game-deal-tracker/internal/metrics"
	"github.com/rmarques/game-deal-tracker/internal/notify"
	"github.com/rmarques/game-deal-tracker/internal/store"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

const (
	defaultUserWorkers  = 4
	defaultEntryWorkers = 5

	batchSubject = "Your games are on sale!"
)

// GameResolver resolves a wishlist entry back into a normalized game. The
// catalog service implements it.
type GameResolver interface {
	GetByID(ctx context.Context, platform domain.Platform, identifier string) (*domain.Game, error)
}

// Engine orchestrates the discount scan pipeline.
type Engine struct {
	store    store.Store
	resolver GameResolver
	identity identity.Provider
	notifier notify.Notifier
	log      *slog.Logger

	userWorkers  int
	entryWorkers int
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithUserWorkers bounds how many users are scanned concurrently.
func WithUserWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.userWorkers = n
		}
	}
}

// WithEntryWorkers bounds concurrent provider re-fetches within one user.
func WithEntryWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.entryWorkers = n
		}
	}
}

// NewEngine creates a scan engine with injected dependencies.
func NewEngine(
	st store.Store,
	resolver GameResolver,
	idp identity.Provider,
	notifier notify.Notifier,
	opts ...Option,
) *Engine {
	e := &Engine{
		store:        st,
		resolver:     resolver,
		identity:     idp,
		notifier:     notifier,
		log:          slog.Default(),
		userWorkers:  defaultUserWorkers,
		entryWorkers: defaultEntryWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunScan executes one full discount scan. A failing entry or user never
// aborts the run; the only fatal error is being unable to list the eligible
// users at all.
func (e *Engine) RunScan(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.ScanDuration.Observe(time.Since(start).Seconds())
	}()

	users, err := e.identity.UsersEligibleForNotification(ctx)
	if err != nil {
		return fmt.Errorf("listing notifiable users: %w", err)
	}

	e.log.Info("discount scan starting", "users", len(users))

	sem := make(chan struct{}, e.userWorkers)
	var wg sync.WaitGroup

	for i := range users {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(u *domain.User) {
			defer wg.Done()
			defer func() { <-sem }()
			e.scanUser(ctx, u)
		}(&users[i])
	}

	wg.Wait()

	e.log.Info("discount scan finished", "duration", time.Since(start))
	return ctx.Err()
}

// scanUser re-resolves one user's wishlist and dispatches a single batch if
// any entry is discounted. Each worker touches only this user's data.
func (e *Engine) scanUser(ctx context.Context, u *domain.User) {
	metrics.ScanUsersTotal.Inc()

	entries, err := e.store.ListWishlistByUser(ctx, u.ID)
	if err != nil {
		e.log.Error("listing wishlist failed", "user", u.ID, "error", err)
		return
	}
	if len(entries) == 0 {
		return
	}

	discounted := e.collectDiscounts(ctx, entries)
	if len(discounted) == 0 {
		return
	}

	metrics.DiscountsFoundTotal.Add(float64(len(discounted)))

	batch := &domain.NotificationBatch{
		RecipientEmail: u.Email,
		Subject:        batchSubject,
		Games:          discounted,
	}

	if err := e.notifier.SendDiscountBatch(ctx, batch); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		e.log.Error("notification dispatch failed", "user", u.ID, "error", err)
		return
	}

	metrics.NotificationsSentTotal.Inc()
	e.log.Info("discount notification sent",
		"user", u.ID,
		"games", len(discounted),
	)
}

// collectDiscounts fans out provider re-fetches over a bounded worker set.
// Entries that fail to resolve are skipped; order of the result is not
// significant.
func (e *Engine) collectDiscounts(ctx context.Context, entries []domain.WishlistEntry) []domain.Game {
	var (
		mu         sync.Mutex
		discounted []domain.Game
	)

	sem := make(chan struct{}, e.entryWorkers)
	var wg sync.WaitGroup

	for i := range entries {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(entry *domain.WishlistEntry) {
			defer wg.Done()
			defer func() { <-sem }()

			g, err := e.resolver.GetByID(ctx, entry.Platform, entry.PlatformIdentifier)
			if err != nil {
				metrics.ScanEntryErrorsTotal.Inc()
				e.log.Warn("skipping wishlist entry",
					"user", entry.UserID,
					"platform", entry.Platform,
					"identifier", entry.PlatformIdentifier,
					"error", err,
				)
				return
			}

			if g.Discounted() {
				mu.Lock()
				discounted = append(discounted, *g)
				mu.Unlock()
			}
		}(&entries[i])
	}

	wg.Wait()
	return discounted
}
