package ports

import (
	"context"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

// PublishedUser is the projection returned by the public user directory:
// only users holding a subdomain with a published landing image appear.
type PublishedUser struct {
	ID       string `json:"id"`
	Domain   string `json:"domain"`
	FullName string `json:"fullName"`
	Image    string `json:"image"`
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByDomain returns the user currently holding the subdomain name.
	FindByDomain(ctx context.Context, name string) (*domain.User, error)
	SetPassword(ctx context.Context, id, passwordHash string) error
	// SetDomain binds the subdomain name to the user and returns the updated
	// record. Fails with domain.ErrDomainTaken when another user holds it.
	SetDomain(ctx context.Context, id, name string) (*domain.User, error)
	// ListPublished returns users that have claimed their account, hold a
	// subdomain, and have a content record with a landing image.
	ListPublished(ctx context.Context) ([]PublishedUser, error)
}
