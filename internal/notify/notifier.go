// Package notify defines the notification interface and implementations for
// discount alert delivery.
package notify

import (
	"context"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// Notifier delivers one consolidated discount batch to its recipient.
type Notifier interface {
	SendDiscountBatch(ctx context.Context, batch *domain.NotificationBatch) error
}
