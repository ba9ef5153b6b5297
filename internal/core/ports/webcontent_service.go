package ports

import (
	"context"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

// Attachment is a media file uploaded alongside a publish or update request.
// Field names the purpose ("landing_image", "live_image", "live_video",
// "avatar", "org_image_<i>"); an attachment always wins over a same-purpose
// inline URL in the section data.
type Attachment struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// ContentInput carries everything a publish or update request supplies.
type ContentInput struct {
	Sections    domain.SectionPatch
	Attachments []Attachment
}

// WebContentService orchestrates the publish and update workflows:
// validate, normalize, render, upload, persist, and on update also clean up
// the previous artifact and refresh the subdomain binding.
type WebContentService interface {
	Publish(ctx context.Context, userID string, input ContentInput) (*domain.WebContent, error)
	Update(ctx context.Context, userID string, input ContentInput) (*domain.WebContent, error)
	Get(ctx context.Context, userID string) (*domain.WebContent, error)
	// Delete removes the content record and best-effort unpins its artifact.
	Delete(ctx context.Context, userID string) error
}
