package ports

import (
	"context"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

// LoginResult is returned by AuthService.Login.
type LoginResult struct {
	Token string
	User  *domain.User
	// FormattedDomain is the full site name ("<name>.<parent>.link"), empty
	// when the user has not bound a subdomain yet.
	FormattedDomain string
	// WebContent is the user's content record, nil before first publish.
	WebContent *domain.WebContent
}

// AuthService implements the invite-then-claim account flow.
type AuthService interface {
	// Approve creates an account from an email alone; the password is set on
	// the first login.
	Approve(ctx context.Context, email string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// ValidateToken checks a session token and returns its claims.
	ValidateToken(token string) (*TokenClaims, error)
}

// TokenClaims are the session claims embedded in the JWT.
type TokenClaims struct {
	UserID string
	Email  string
}
