package engine_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/game-deal-tracker/internal/engine"
	"github.com/rmarques/game-deal-tracker/internal/identity"
	"github.com/rmarques/game-deal-tracker/internal/provider"
	"github.com/rmarques/game-deal-tracker/internal/store/storetest"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeResolver serves canned games keyed by "platform/identifier".
type fakeResolver struct {
	mu    sync.Mutex
	games map[string]domain.Game
	errs  map[string]error
	calls int
	delay time.Duration
}

func key(p domain.Platform, id string) string {
	return fmt.Sprintf("%s/%s", p, id)
}

func (f *fakeResolver) GetByID(_ context.Context, p domain.Platform, id string) (*domain.Game, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	k := key(p, id)
	if err, ok := f.errs[k]; ok {
		return nil, err
	}
	g, ok := f.games[k]
	if !ok {
		return nil, provider.ErrUpstreamUnavailable
	}
	return &g, nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	batches []domain.NotificationBatch
	err     error
}

func (f *fakeNotifier) SendDiscountBatch(_ context.Context, b *domain.NotificationBatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, *b)
	return nil
}

func (f *fakeNotifier) sent() []domain.NotificationBatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.NotificationBatch(nil), f.batches...)
}

func discountedGame(id string, percent int) domain.Game {
	return domain.Game{
		Identifier:      id,
		Title:           "Game " + id,
		Platform:        domain.PlatformSteam,
		InitialPrice:    50,
		DiscountedPrice: 50 * float64(100-percent) / 100,
		DiscountPercent: percent,
	}
}

func fullPriceGame(id string) domain.Game {
	return domain.Game{
		Identifier:      id,
		Title:           "Game " + id,
		Platform:        domain.PlatformSteam,
		InitialPrice:    50,
		DiscountedPrice: 50,
	}
}

type scanFixture struct {
	store    *storetest.Store
	resolver *fakeResolver
	notifier *fakeNotifier
}

func newScanFixture() *scanFixture {
	return &scanFixture{
		store: storetest.New(),
		resolver: &fakeResolver{
			games: make(map[string]domain.Game),
			errs:  make(map[string]error),
		},
		notifier: &fakeNotifier{},
	}
}

func (f *scanFixture) engine(opts ...engine.Option) *engine.Engine {
	return engine.NewEngine(
		f.store,
		f.resolver,
		identity.NewStoreProvider(f.store),
		f.notifier,
		opts...,
	)
}

func (f *scanFixture) addUser(t *testing.T, email string, verified, enabled bool) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:                 email,
		Email:                email,
		EmailVerified:        verified,
		NotificationsEnabled: enabled,
	}
	require.NoError(t, f.store.CreateUser(context.Background(), u))
	return u
}

func (f *scanFixture) track(t *testing.T, userID uuid.UUID, g domain.Game) {
	t.Helper()
	f.resolver.games[key(g.Platform, g.Identifier)] = g
	require.NoError(t, f.store.AddWishlistEntry(context.Background(), &domain.WishlistEntry{
		WishlistKey: domain.WishlistKey{
			UserID:             userID,
			Platform:           g.Platform,
			PlatformIdentifier: g.Identifier,
		},
	}))
}

func TestEngine_RunScan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("one batch per user with discounts", func(t *testing.T) {
		t.Parallel()
		f := newScanFixture()

		u := f.addUser(t, "player@example.com", true, true)
		f.track(t, u.ID, discountedGame("10", 50))
		f.track(t, u.ID, fullPriceGame("20"))
		f.track(t, u.ID, discountedGame("30", 25))

		require.NoError(t, f.engine().RunScan(ctx))

		batches := f.notifier.sent()
		require.Len(t, batches, 1)
		assert.Equal(t, "player@example.com", batches[0].RecipientEmail)
		assert.Len(t, batches[0].Games, 2)
	})

	t.Run("no discounts means no notification", func(t *testing.T) {
		t.Parallel()
		f := newScanFixture()

		u := f.addUser(t, "player@example.com", true, true)
		f.track(t, u.ID, fullPriceGame("10"))

		require.NoError(t, f.engine().RunScan(ctx))
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("ineligible users are never scanned", func(t *testing.T) {
		t.Parallel()
		f := newScanFixture()

		unverified := f.addUser(t, "unverified@example.com", false, true)
		optedOut := f.addUser(t, "opted-out@example.com", true, false)
		f.track(t, unverified.ID, discountedGame("10", 50))
		f.track(t, optedOut.ID, discountedGame("11", 50))

		require.NoError(t, f.engine().RunScan(ctx))
		assert.Empty(t, f.notifier.sent())
	})

	t.Run("failing entry is skipped, rest still delivered", func(t *testing.T) {
		t.Parallel()
		f := newScanFixture()

		u := f.addUser(t, "player@example.com", true, true)
		f.track(t, u.ID, discountedGame("10", 50))

		broken := discountedGame("11", 40)
		f.track(t, u.ID, broken)
		f.resolver.errs[key(broken.Platform, broken.Identifier)] = provider.ErrUpstreamUnavailable

		require.NoError(t, f.engine().RunScan(ctx))

		batches := f.notifier.sent()
		require.Len(t, batches, 1)
		require.Len(t, batches[0].Games, 1)
		assert.Equal(t, "10", batches[0].Games[0].Identifier)
	})

	t.Run("dispatch failure does not abort the run", func(t *testing.T) {
		t.Parallel()
		f := newScanFixture()
		f.notifier.err = errors.New("webhook down")

		u := f.addUser(t, "player@example.com", true, true)
		f.track(t, u.ID, discountedGame("10", 50))

		assert.NoError(t, f.engine().RunScan(ctx))
	})

	t.Run("users are isolated from each other", func(t *testing.T) {
		t.Parallel()
		f := newScanFixture()

		alice := f.addUser(t, "alice@example.com", true, true)
		bob := f.addUser(t, "bob@example.com", true, true)
		f.track(t, alice.ID, discountedGame("10", 50))
		f.track(t, bob.ID, discountedGame("20", 30))

		require.NoError(t, f.engine().RunScan(ctx))

		batches := f.notifier.sent()
		require.Len(t, batches, 2)

		byRecipient := make(map[string][]domain.Game)
		for _, b := range batches {
			byRecipient[b.RecipientEmail] = b.Games
		}
		require.Len(t, byRecipient["alice@example.com"], 1)
		require.Len(t, byRecipient["bob@example.com"], 1)
		assert.Equal(t, "10", byRecipient["alice@example.com"][0].Identifier)
		assert.Equal(t, "20", byRecipient["bob@example.com"][0].Identifier)
	})

	t.Run("user listing failure is fatal", func(t *testing.T) {
		t.Parallel()
		f := newScanFixture()
		f.store.Err = errors.New("db down")

		err := f.engine().RunScan(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing notifiable users")
	})
}

func TestEngine_WorkerBounds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newScanFixture()
	u := f.addUser(t, "player@example.com", true, true)
	for i := range 20 {
		f.track(t, u.ID, discountedGame(fmt.Sprintf("%d", i), 50))
	}

	eng := f.engine(engine.WithUserWorkers(2), engine.WithEntryWorkers(3))
	require.NoError(t, eng.RunScan(ctx))

	batches := f.notifier.sent()
	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Games, 20)
	assert.Equal(t, 20, f.resolver.calls)
}

func TestScheduler(t *testing.T) {
	t.Parallel()

	f := newScanFixture()
	u := f.addUser(t, "player@example.com", true, true)
	f.track(t, u.ID, discountedGame("10", 50))

	s, err := engine.NewScheduler(f.engine(), engine.DefaultScanInterval, discardLogger())
	require.NoError(t, err)

	require.Len(t, s.Entries(), 1)

	s.Start()
	defer func() {
		<-s.Stop().Done()
	}()

	// Start fires an immediate scan; the next cron slot is a day away.
	require.Eventually(t, func() bool {
		return len(f.notifier.sent()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_StopWaitsForImmediateScan(t *testing.T) {
	t.Parallel()

	f := newScanFixture()
	u := f.addUser(t, "player@example.com", true, true)
	f.track(t, u.ID, discountedGame("10", 50))
	f.resolver.delay = 100 * time.Millisecond

	s, err := engine.NewScheduler(f.engine(), engine.DefaultScanInterval, discardLogger())
	require.NoError(t, err)

	s.Start()
	<-s.Stop().Done()

	// Stop must block until the in-flight first scan has delivered its batch,
	// otherwise shutdown would race a scan still writing to the store.
	require.Len(t, f.notifier.sent(), 1)
}
