package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/siher/webpage-publisher/internal/api/metrics"
	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

// WebContentService orchestrates the publish and update workflows. Each
// operation is a single pass: validate, normalize, render, upload, persist.
// No intermediate state is stored; a failure before Persisting leaves the
// previous record untouched (an upload that persisted nothing is an
// accepted orphan).
type WebContentService struct {
	content   ports.WebContentRepository
	users     ports.UserRepository
	artifacts ports.ArtifactStore
	registrar ports.DomainRegistrar
	renderer  ports.Renderer
	locks     ports.PublishLocker
	log       zerolog.Logger
}

func NewWebContentService(
	content ports.WebContentRepository,
	users ports.UserRepository,
	artifacts ports.ArtifactStore,
	registrar ports.DomainRegistrar,
	renderer ports.Renderer,
	locks ports.PublishLocker,
	log zerolog.Logger,
) *WebContentService {
	return &WebContentService{
		content:   content,
		users:     users,
		artifacts: artifacts,
		registrar: registrar,
		renderer:  renderer,
		locks:     locks,
		log:       log,
	}
}

// Publish renders and uploads a first-time (or republished) page. Supplied
// sections are merged over bare defaults, so every field the template
// touches exists. Persisting uses create-or-replace semantics: republishing
// is idempotent rather than a conflict.
func (s *WebContentService) Publish(ctx context.Context, userID string, input ports.ContentInput) (*domain.WebContent, error) {
	release, err := s.locks.TryLock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	if input.Sections.IsEmpty() && len(input.Attachments) == 0 {
		return nil, domain.ErrMissingContent
	}

	existing, err := s.content.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrContentNotFound) {
		return nil, err
	}
	prevHash := ""
	if existing != nil {
		prevHash = existing.ContentHash
	}

	sections := input.Sections.ApplyTo(domain.DefaultSections())
	if err := s.applyAttachments(ctx, &sections, input.Attachments); err != nil {
		return nil, err
	}

	record, err := s.renderAndPersist(ctx, userID, sections)
	if err != nil {
		metrics.PublishesTotal.WithLabelValues("publish", "error").Inc()
		return nil, err
	}

	// Replacing an existing record changes the content hash; the stale
	// artifact must be unpinned or it leaks pinned storage.
	if prevHash != "" && prevHash != record.ContentHash {
		s.cleanupArtifact(ctx, userID, prevHash)
	}

	metrics.PublishesTotal.WithLabelValues("publish", "success").Inc()
	s.log.Info().
		Str("user_id", userID).
		Str("content_hash", record.ContentHash).
		Msg("web content published")
	return record, nil
}

// Update re-renders the page from the existing record merged with the
// supplied sections, replaces the artifact, and refreshes the subdomain
// binding when one is held. Requires a prior publish.
func (s *WebContentService) Update(ctx context.Context, userID string, input ports.ContentInput) (*domain.WebContent, error) {
	release, err := s.locks.TryLock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	if input.Sections.IsEmpty() && len(input.Attachments) == 0 {
		return nil, domain.ErrMissingContent
	}

	existing, err := s.content.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Omitted sections are preserved verbatim from the persisted record.
	sections := input.Sections.ApplyTo(existing.Sections)
	if err := s.applyAttachments(ctx, &sections, input.Attachments); err != nil {
		return nil, err
	}

	record, err := s.renderAndPersist(ctx, userID, sections)
	if err != nil {
		metrics.PublishesTotal.WithLabelValues("update", "error").Inc()
		return nil, err
	}

	if existing.ContentHash != "" && existing.ContentHash != record.ContentHash {
		s.cleanupArtifact(ctx, userID, existing.ContentHash)
	}

	if user.Domain != "" {
		if ok := s.registrar.Register(ctx, user.Domain, record.ContentHash); !ok {
			// The new page is live but the subdomain still points at the old
			// artifact; the caller must retry to reconcile.
			s.log.Error().
				Str("user_id", userID).
				Str("domain", user.Domain).
				Str("content_hash", record.ContentHash).
				Msg("subdomain re-registration failed after update")
			return nil, domain.ErrRegistrarFailed
		}
	}

	metrics.PublishesTotal.WithLabelValues("update", "success").Inc()
	s.log.Info().
		Str("user_id", userID).
		Str("content_hash", record.ContentHash).
		Msg("web content updated")
	return record, nil
}

// Get returns the caller's content record.
func (s *WebContentService) Get(ctx context.Context, userID string) (*domain.WebContent, error) {
	return s.content.FindByUser(ctx, userID)
}

// Delete removes the record and best-effort unpins its artifact.
func (s *WebContentService) Delete(ctx context.Context, userID string) error {
	record, err := s.content.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if record.ContentHash != "" {
		s.cleanupArtifact(ctx, userID, record.ContentHash)
	}
	s.log.Info().Str("user_id", userID).Msg("web content deleted")
	return nil
}

func (s *WebContentService) renderAndPersist(ctx context.Context, userID string, sections domain.ContentSections) (*domain.WebContent, error) {
	start := time.Now()
	html, err := s.renderer.Render(sections)
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	filename := uuid.NewString() + ".html"
	cid, err := s.artifacts.Put(ctx, []byte(html), filename, "text/html")
	if err != nil {
		return nil, err
	}

	record, err := s.content.Upsert(ctx, userID, cid, sections)
	if err != nil {
		// The uploaded artifact is now orphaned; no compensation is
		// attempted, it can be reconciled out-of-band.
		s.log.Error().Err(err).
			Str("user_id", userID).
			Str("content_hash", cid).
			Msg("persist failed after upload, artifact orphaned")
		return nil, err
	}
	return record, nil
}

// cleanupArtifact unpins a stale CID. Failure is logged and counted but
// never fails the primary operation.
func (s *WebContentService) cleanupArtifact(ctx context.Context, userID, cid string) {
	if err := s.artifacts.Delete(ctx, cid); err != nil {
		metrics.ArtifactCleanupFailuresTotal.Inc()
		s.log.Warn().Err(err).
			Str("user_id", userID).
			Str("content_hash", cid).
			Msg("failed to delete stale artifact")
	}
}

// applyAttachments uploads each media file and writes its gateway URL into
// the matching section field. A file always wins over a same-purpose inline
// URL.
func (s *WebContentService) applyAttachments(ctx context.Context, sections *domain.ContentSections, attachments []ports.Attachment) error {
	for _, att := range attachments {
		cid, err := s.artifacts.Put(ctx, att.Data, att.Filename, att.ContentType)
		if err != nil {
			return err
		}
		url := s.artifacts.GatewayURL(cid)

		switch {
		case att.Field == "landing_image":
			sections.Landing.Image = url
		case att.Field == "live_image":
			sections.Live.Image = url
		case att.Field == "live_video":
			sections.Live.Video = url
		case att.Field == "avatar":
			sections.Available.Avatar = url
		case strings.HasPrefix(att.Field, "org_image_"):
			idx, convErr := strconv.Atoi(strings.TrimPrefix(att.Field, "org_image_"))
			if convErr != nil || idx < 0 {
				s.log.Warn().Str("field", att.Field).Msg("ignoring malformed organization image field")
				continue
			}
			for len(sections.Organizations) <= idx {
				sections.Organizations = append(sections.Organizations, "")
			}
			sections.Organizations[idx] = url
		default:
			s.log.Warn().Str("field", att.Field).Msg("ignoring unrecognized attachment field")
		}
	}
	return nil
}
