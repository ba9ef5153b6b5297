package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

// UsersService serves the public user directory and newsletter signups.
type UsersService struct {
	users        ports.UserRepository
	subscribers  ports.SubscriberRepository
	parentDomain string
	log          zerolog.Logger
}

func NewUsersService(
	users ports.UserRepository,
	subscribers ports.SubscriberRepository,
	parentDomain string,
	log zerolog.Logger,
) *UsersService {
	return &UsersService{
		users:        users,
		subscribers:  subscribers,
		parentDomain: parentDomain,
		log:          log,
	}
}

// ListPublished returns claimed users bound to a subdomain with a published
// landing image, with the subdomain expanded to the full site name.
func (s *UsersService) ListPublished(ctx context.Context) ([]ports.PublishedUser, error) {
	users, err := s.users.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Domain = domain.FormatSiteName(users[i].Domain, s.parentDomain)
	}
	return users, nil
}

// Subscribe adds an email to the subscriber list.
func (s *UsersService) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}

	sub, err := s.subscribers.Create(ctx, email)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("email subscribed")
	return sub, nil
}
