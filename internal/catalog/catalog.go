// Package catalog normalizes the two storefront schemas into the canonical
// Game representation. All provider-specific logic stays in the adapter
// packages; callers only ever see domain.Game.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rmarques/game-deal-tracker/internal/epic"
	"github.com/rmarques/game-deal-tracker/internal/identity"
	"github.com/rmarques/game-deal-tracker/internal/steam"
	"github.com/rmarques/game-deal-tracker/internal/store"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// ErrUnknownPlatform reports a platform value outside the supported set.
var ErrUnknownPlatform = errors.New("unknown platform")

// ErrBadIdentifier reports an identifier that cannot belong to its platform.
var ErrBadIdentifier = errors.New("invalid platform identifier")

// Service searches and resolves games across both storefronts.
type Service struct {
	steam  steam.Client
	epic   epic.Client
	store  store.Store
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a catalog service. st may be nil, in which case search
// history is not recorded.
func NewService(sc steam.Client, ec epic.Client, st store.Store, opts ...Option) *Service {
	s := &Service{
		steam:  sc,
		epic:   ec,
		store:  st,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns normalized games matching the name on one platform. When an
// authenticated user is present in the context the search is recorded as
// history, best effort.
func (s *Service) Search(ctx context.Context, name string, platform domain.Platform) ([]domain.Game, error) {
	games, err := s.search(ctx, name, platform)
	if err != nil {
		return nil, err
	}

	s.recordSearch(ctx, name, platform)
	return games, nil
}

func (s *Service) search(ctx context.Context, name string, platform domain.Platform) ([]domain.Game, error) {
	switch platform {
	case domain.PlatformSteam:
		details, err := s.steam.SearchByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return steam.ToGames(details), nil

	case domain.PlatformEpic:
		items, err := s.epic.Search(ctx, name)
		if err != nil {
			return nil, err
		}
		return s.convertEpic(items), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
}

// GetByID resolves a single game by its platform identifier: the numeric app
// id for Steam, the title for Epic.
func (s *Service) GetByID(ctx context.Context, platform domain.Platform, identifier string) (*domain.Game, error) {
	switch platform {
	case domain.PlatformSteam:
		appID, err := strconv.Atoi(identifier)
		if err != nil {
			return nil, fmt.Errorf("steam identifier %q is not an app id: %w", identifier, ErrBadIdentifier)
		}
		details, err := s.steam.FetchDetails(ctx, appID)
		if err != nil {
			return nil, err
		}
		g := steam.ToGame(details)
		return &g, nil

	case domain.PlatformEpic:
		item, err := s.epic.FetchDetails(ctx, identifier)
		if err != nil {
			return nil, err
		}
		g, err := epic.ToGame(item)
		if err != nil {
			return nil, err
		}
		return &g, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
}

// convertEpic applies the availability filter and normalizes each remaining
// item. Items violating the store-page invariant are defects: logged and
// skipped, never fatal for the whole result.
func (s *Service) convertEpic(items []epic.StoreGame) []domain.Game {
	available := epic.FilterAvailable(items)

	games := make([]domain.Game, 0, len(available))
	for i := range available {
		g, err := epic.ToGame(&available[i])
		if err != nil {
			s.logger.Error("dropping epic item",
				"title", available[i].Title,
				"error", err,
			)
			continue
		}
		games = append(games, g)
	}
	return games
}

func (s *Service) recordSearch(ctx context.Context, name string, platform domain.Platform) {
	if s.store == nil {
		return
	}
	userID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		return
	}

	gs := &domain.GameSearch{
		UserID:   userID,
		GameName: name,
		Platform: platform,
	}
	if err := s.store.SaveGameSearch(ctx, gs); err != nil {
		s.logger.Warn("failed to record game search", "user", userID, "error", err)
	}
}
