package ports

import (
	"context"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

// SubscriberRepository persists newsletter signups.
type SubscriberRepository interface {
	// Create stores a new subscriber. Fails with domain.ErrAlreadySubscribed
	// on a duplicate email.
	Create(ctx context.Context, email string) (*domain.Subscriber, error)
}
