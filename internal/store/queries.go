package store

// SQL query constants organized by entity.
// All SQL lives here — PostgresStore methods reference these constants.

// Wishlist queries.
const (
	queryAddWishlistEntry = `
		INSERT INTO wishlist_entries (user_id, platform, platform_identifier, created_at)
		VALUES (@user_id, @platform, @platform_identifier, now())
		RETURNING created_at`

	queryRemoveWishlistEntry = `
		DELETE FROM wishlist_entries
		WHERE user_id = $1 AND platform = $2 AND platform_identifier = $3`

	queryListWishlistByUser = `
		SELECT user_id, platform, platform_identifier, created_at
		FROM wishlist_entries
		WHERE user_id = $1
		ORDER BY created_at`
)

// Review queries.
const (
	queryCreateReview = `
		INSERT INTO game_reviews (game_name, content, ai_generated, created_at, updated_at)
		VALUES (@game_name, @content, @ai_generated, now(), now())
		RETURNING id, created_at, updated_at`

	queryGetReviewByGameName = `
		SELECT id, game_name, content, ai_generated, created_at, updated_at
		FROM game_reviews
		WHERE game_name = $1`

	queryUpdateReview = `
		UPDATE game_reviews SET
			content = $2,
			ai_generated = false,
			updated_at = now()
		WHERE id = $1
		RETURNING id, game_name, content, ai_generated, created_at, updated_at`

	queryDeleteReview = `DELETE FROM game_reviews WHERE id = $1`
)

// User queries.
const (
	queryCreateUser = `
		INSERT INTO users (name, email, email_verified, notifications_enabled)
		VALUES (@name, @email, @email_verified, @notifications_enabled)
		RETURNING id`

	queryGetUser = `
		SELECT id, name, email, email_verified, notifications_enabled
		FROM users
		WHERE id = $1`

	queryListNotifiableUsers = `
		SELECT id, name, email, email_verified, notifications_enabled
		FROM users
		WHERE email_verified AND notifications_enabled
		ORDER BY email`
)

// Search history queries.
const (
	querySaveGameSearch = `
		INSERT INTO user_game_searches (user_id, game_name, platform, created_at)
		VALUES (@user_id, @game_name, @platform, now())
		RETURNING id, created_at`

	queryListGameSearchesByUser = `
		SELECT id, user_id, game_name, platform, created_at
		FROM user_game_searches
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
)
