package usecase

import (
	"context"

	"github.com/vantora/leadhub/internal/infra/queue"
)

// TokenIssuer signs and verifies the bearer credentials issued at login.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// QueueProducerInterface publishes lead lifecycle events.
type QueueProducerInterface interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}
