package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/siher/webpage-publisher/internal/api/metrics"
	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

// DomainService binds subdomain names to published content hashes.
type DomainService struct {
	users        ports.UserRepository
	content      ports.WebContentRepository
	registrar    ports.DomainRegistrar
	parentDomain string
	log          zerolog.Logger
}

func NewDomainService(
	users ports.UserRepository,
	content ports.WebContentRepository,
	registrar ports.DomainRegistrar,
	parentDomain string,
	log zerolog.Logger,
) *DomainService {
	return &DomainService{
		users:        users,
		content:      content,
		registrar:    registrar,
		parentDomain: parentDomain,
		log:          log,
	}
}

// PublishDomain registers name for the user. The registrar is only invoked
// once the name is known to be free and the user has a published content
// hash; a rejected registration mutates neither the registrar's view nor
// the user record.
func (s *DomainService) PublishDomain(ctx context.Context, userID, name string) (string, error) {
	if name == "" {
		return "", domain.ErrDomainRequired
	}

	holder, err := s.users.FindByDomain(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}
	if holder != nil {
		return "", domain.ErrDomainTaken
	}

	record, err := s.content.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrContentNotFound) {
		return "", err
	}
	if record == nil || record.ContentHash == "" {
		s.log.Info().Str("user_id", userID).Msg("domain publish rejected: no content hash")
		return "", domain.ErrNoPublishedContent
	}

	if ok := s.registrar.Register(ctx, name, record.ContentHash); !ok {
		metrics.RegistrarRequestsTotal.WithLabelValues("error").Inc()
		return "", domain.ErrRegistrationFailed
	}
	metrics.RegistrarRequestsTotal.WithLabelValues("success").Inc()

	updated, err := s.users.SetDomain(ctx, userID, name)
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("domain", name).
		Str("content_hash", record.ContentHash).
		Msg("subdomain registered")
	return domain.FormatSiteName(updated.Domain, s.parentDomain), nil
}
