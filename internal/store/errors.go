package store

import "errors"

// Error taxonomy surfaced to callers. Handlers map these onto HTTP statuses.
var (
	// ErrConflict reports a uniqueness violation: a duplicate wishlist entry
	// or a second review for the same normalized game name. Enforced by the
	// storage layer's unique constraints, never by check-then-act.
	ErrConflict = errors.New("already exists")

	// ErrNotFound reports an absent wishlist entry, review, or user.
	ErrNotFound = errors.New("not found")
)
