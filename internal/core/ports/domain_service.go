package ports

import "context"

// DomainService binds human-chosen subdomain names to published content.
type DomainService interface {
	// PublishDomain registers the name for the user and returns the full
	// site name ("<name>.<parent>.link"). Preconditions enforced here: the
	// name is free and the user has a published content hash.
	PublishDomain(ctx context.Context, userID, name string) (string, error)
}
