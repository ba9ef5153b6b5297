package ports

import (
	"context"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

// ArtifactStore is a thin wrapper over a remote content-addressed storage
// service (IPFS pinning). A single Put or Delete call is atomic from the
// caller's point of view; no retries are performed here.
type ArtifactStore interface {
	// Put uploads the bytes and returns the resulting content identifier.
	// Failures come back as *domain.StorageError.
	Put(ctx context.Context, data []byte, filename, contentType string) (string, error)
	// Delete unpins a CID. Deleting a CID that is already gone is not an
	// error; callers treat any remaining failure as best-effort cleanup.
	Delete(ctx context.Context, cid string) error
	// GatewayURL returns the public HTTP URL serving the given CID.
	GatewayURL(cid string) string
}

// DomainRegistrar binds subdomain names to content identifiers on an
// external naming service. Register reports success as a boolean so callers
// can surface a user-facing "could not register" message; it never returns
// an error for a remote rejection.
type DomainRegistrar interface {
	Register(ctx context.Context, name, cid string) bool
}

// PublishLocker serializes publish/update operations per user so concurrent
// read-merge-write sequences cannot silently drop one writer's changes.
type PublishLocker interface {
	// TryLock acquires the user's publish lock and returns its release
	// function, or domain.ErrUpdateInProgress when already held.
	TryLock(ctx context.Context, userID string) (func(), error)
}

// Renderer turns a normalized section set into a standalone HTML page.
type Renderer interface {
	Render(sections domain.ContentSections) (string, error)
}
