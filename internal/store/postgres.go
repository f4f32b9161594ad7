package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

const defaultPoolSize = 10

// Postgres error codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures the PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int32) PostgresOption {
	return func(cfg *pgxpool.Config) {
		cfg.MaxConns = n
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...PostgresOption) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// AddWishlistEntry inserts a wishlist membership. The composite primary key
// makes the insert itself the uniqueness check: a duplicate raises a unique
// violation which is mapped to ErrConflict, so concurrent identical adds
// cannot race. An unknown user trips the foreign key on user_id and is
// mapped to ErrNotFound.
func (s *PostgresStore) AddWishlistEntry(ctx context.Context, e *domain.WishlistEntry) error {
	args := pgx.NamedArgs{
		"user_id":             e.UserID,
		"platform":            string(e.Platform),
		"platform_identifier": e.PlatformIdentifier,
	}

	err := s.pool.QueryRow(ctx, queryAddWishlistEntry, args).Scan(&e.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("wishlist entry: %w", ErrConflict)
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("user %s: %w", e.UserID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("adding wishlist entry: %w", err)
	}
	return nil
}

// RemoveWishlistEntry deletes a wishlist membership by its composite key.
func (s *PostgresStore) RemoveWishlistEntry(ctx context.Context, key domain.WishlistKey) error {
	tag, err := s.pool.Exec(ctx, queryRemoveWishlistEntry,
		key.UserID, string(key.Platform), key.PlatformIdentifier,
	)
	if err != nil {
		return fmt.Errorf("removing wishlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishlist entry: %w", ErrNotFound)
	}
	return nil
}

// ListWishlistByUser returns all wishlist entries owned by a user.
func (s *PostgresStore) ListWishlistByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.WishlistEntry, error) {
	rows, err := s.pool.Query(ctx, queryListWishlistByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("querying wishlist: %w", err)
	}
	defer rows.Close()

	var entries []domain.WishlistEntry
	for rows.Next() {
		var e domain.WishlistEntry
		var platform string
		if err := rows.Scan(&e.UserID, &platform, &e.PlatformIdentifier, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning wishlist entry: %w", err)
		}
		e.Platform = domain.Platform(platform)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wishlist entries: %w", err)
	}

	return entries, nil
}

// CreateReview inserts a review. GameName must already be normalized; the
// unique index on it maps duplicates to ErrConflict atomically.
func (s *PostgresStore) CreateReview(ctx context.Context, r *domain.Review) error {
	args := pgx.NamedArgs{
		"game_name":    r.GameName,
		"content":      r.Content,
		"ai_generated": r.AIGenerated,
	}

	err := s.pool.QueryRow(ctx, queryCreateReview, args).Scan(
		&r.ID, &r.CreatedAt, &r.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("review for %q: %w", r.GameName, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("creating review: %w", err)
	}
	return nil
}

// GetReviewByGameName retrieves a review by its normalized game name.
func (s *PostgresStore) GetReviewByGameName(
	ctx context.Context,
	normalizedName string,
) (*domain.Review, error) {
	r := &domain.Review{}
	err := s.pool.QueryRow(ctx, queryGetReviewByGameName, normalizedName).Scan(
		&r.ID, &r.GameName, &r.Content, &r.AIGenerated, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("review for %q: %w", normalizedName, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting review: %w", err)
	}
	return r, nil
}

// UpdateReview replaces a review's content. A human edited it, so the
// AI-generated flag is always cleared by the query itself.
func (s *PostgresStore) UpdateReview(
	ctx context.Context,
	id uuid.UUID,
	content string,
) (*domain.Review, error) {
	r := &domain.Review{}
	err := s.pool.QueryRow(ctx, queryUpdateReview, id, content).Scan(
		&r.ID, &r.GameName, &r.Content, &r.AIGenerated, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating review: %w", err)
	}
	return r, nil
}

// DeleteReview removes a review by id.
func (s *PostgresStore) DeleteReview(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, queryDeleteReview, id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return nil
}

// CreateUser inserts a user. The email unique constraint maps duplicates to
// ErrConflict.
func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) error {
	args := pgx.NamedArgs{
		"name":                  u.Name,
		"email":                 u.Email,
		"email_verified":        u.EmailVerified,
		"notifications_enabled": u.NotificationsEnabled,
	}

	err := s.pool.QueryRow(ctx, queryCreateUser, args).Scan(&u.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %q: %w", u.Email, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by id.
func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u := &domain.User{}
	err := s.pool.QueryRow(ctx, queryGetUser, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.EmailVerified, &u.NotificationsEnabled,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// ListNotifiableUsers returns users with a verified email and notifications
// enabled — the discount scan's eligible set.
func (s *PostgresStore) ListNotifiableUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx, queryListNotifiableUsers)
	if err != nil {
		return nil, fmt.Errorf("querying notifiable users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.EmailVerified, &u.NotificationsEnabled); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

// SaveGameSearch records one catalog search performed by a user.
func (s *PostgresStore) SaveGameSearch(ctx context.Context, gs *domain.GameSearch) error {
	args := pgx.NamedArgs{
		"user_id":   gs.UserID,
		"game_name": gs.GameName,
		"platform":  string(gs.Platform),
	}

	err := s.pool.QueryRow(ctx, querySaveGameSearch, args).Scan(&gs.ID, &gs.CreatedAt)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("user %s: %w", gs.UserID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("saving game search: %w", err)
	}
	return nil
}

// ListGameSearchesByUser returns a user's most recent catalog searches.
func (s *PostgresStore) ListGameSearchesByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]domain.GameSearch, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, queryListGameSearchesByUser, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying game searches: %w", err)
	}
	defer rows.Close()

	var searches []domain.GameSearch
	for rows.Next() {
		var gs domain.GameSearch
		var platform string
		if err := rows.Scan(&gs.ID, &gs.UserID, &gs.GameName, &platform, &gs.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning game search: %w", err)
		}
		gs.Platform = domain.Platform(platform)
		searches = append(searches, gs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating game searches: %w", err)
	}

	return searches, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
