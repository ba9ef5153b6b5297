package ports

import (
	"context"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

// UsersService exposes the public directory and newsletter signups.
type UsersService interface {
	ListPublished(ctx context.Context) ([]PublishedUser, error)
	Subscribe(ctx context.Context, email string) (*domain.Subscriber, error)
}
