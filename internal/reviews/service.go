// Package reviews manages the deduplicated game review store: at most one
// review per normalized game name, whether human-written or LLM-generated.
package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rmarques/game-deal-tracker/internal/metrics"
	"github.com/rmarques/game-deal-tracker/internal/store"
	"github.com/rmarques/game-deal-tracker/pkg/llm"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// Service implements review CRUD plus LLM-backed generation. All lookups key
// on the normalized game name; uniqueness is enforced by the store, not here.
type Service struct {
	store   store.Store
	backend llm.Backend
	logger  *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a review service. backend may be nil, in which case
// GenerateIfAbsent is unavailable and manual creation still works.
func NewService(st store.Store, backend llm.Backend, opts ...Option) *Service {
	s := &Service{
		store:   st,
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the review for a game, keyed by normalized name.
func (s *Service) Get(ctx context.Context, gameName string) (*domain.Review, error) {
	return s.store.GetReviewByGameName(ctx, domain.NormalizeGameName(gameName))
}

// Create persists a human-authored review. Returns store.ErrConflict when a
// review already exists for the normalized name.
func (s *Service) Create(ctx context.Context, gameName, content string) (*domain.Review, error) {
	r := &domain.Review{
		GameName:    domain.NormalizeGameName(gameName),
		Content:     content,
		AIGenerated: false,
	}
	if err := s.store.CreateReview(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("review created", "game", r.GameName, "ai_generated", false)
	return r, nil
}

// GenerateIfAbsent asks the LLM backend composing a review for the game and
// persists it with the AI flag set. Returns store.ErrConflict when a review
// already exists; the duplicate guard is the insert itself, so a generation
// racing a manual create loses cleanly after the model call.
func (s *Service) GenerateIfAbsent(ctx context.Context, gameName string) (*domain.Review, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("no generation backend configured")
	}

	normalized := domain.NormalizeGameName(gameName)

	// Fail fast on the common case before paying for a model call.
	if _, err := s.store.GetReviewByGameName(ctx, normalized); err == nil {
		return nil, fmt.Errorf("review for %q: %w", normalized, store.ErrConflict)
	}

	start := time.Now()
	resp, err := s.backend.Generate(ctx, llm.ReviewRequest(gameName))
	metrics.ReviewGenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ReviewGenerationFailuresTotal.Inc()
		return nil, fmt.Errorf("generating review: %w", err)
	}

	r := &domain.Review{
		GameName:    normalized,
		Content:     resp.Content,
		AIGenerated: true,
	}
	if err := s.store.CreateReview(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("review generated",
		"game", r.GameName,
		"backend", s.backend.Name(),
		"model", resp.Model,
		"duration", time.Since(start),
	)
	return r, nil
}

// Update replaces a review's content. The store clears the AI flag: a human
// edited it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, content string) (*domain.Review, error) {
	r, err := s.store.UpdateReview(ctx, id, content)
	if err != nil {
		return nil, err
	}

	s.logger.Info("review updated", "id", id, "game", r.GameName)
	return r, nil
}

// Delete removes a review by id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteReview(ctx, id); err != nil {
		return err
	}

	s.logger.Info("review deleted", "id", id)
	return nil
}
