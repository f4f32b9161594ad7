package notify

import (
	"context"
	"log/slog"

	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// NoOpNotifier implements Notifier by logging discarded batches. It is used
// when no notification backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards batches with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendDiscountBatch logs and discards the batch.
func (n *NoOpNotifier) SendDiscountBatch(_ context.Context, batch *domain.NotificationBatch) error {
	n.log.Debug("notification discarded (no backend configured)",
		"recipient", batch.RecipientEmail,
		"games", len(batch.Games),
	)
	return nil
}
