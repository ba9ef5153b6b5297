package ports

import (
	"context"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

// WebContentRepository defines persistence for content records. It never
// touches the artifact store; callers handle artifact cleanup around these
// mutations.
type WebContentRepository interface {
	FindByUser(ctx context.Context, userID string) (*domain.WebContent, error)
	// Upsert creates the record for userID if absent, otherwise replaces its
	// section fields and content hash wholesale.
	Upsert(ctx context.Context, userID, contentHash string, sections domain.ContentSections) (*domain.WebContent, error)
	// Delete removes the record and returns it, so the caller can unpin the
	// artifact. Fails with domain.ErrContentNotFound when absent.
	Delete(ctx context.Context, userID string) (*domain.WebContent, error)
}
