package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthService implements account approval, login, and token validation.
type AuthService struct {
	users        ports.UserRepository
	content      ports.WebContentRepository
	jwtSecret    string
	tokenTTL     time.Duration
	parentDomain string
	log          zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	content ports.WebContentRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	parentDomain string,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 72 * time.Hour
	}
	return &AuthService{
		users:        users,
		content:      content,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		parentDomain: parentDomain,
		log:          log,
	}
}

// Approve creates a password-less account for the email. The password is
// adopted on the first login.
func (s *AuthService) Approve(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !emailRegex.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:     strings.ToLower(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Msg("user approved")
	return created, nil
}

// Login authenticates the user and returns a signed session token. A user
// logging in for the first time has no password hash yet; the supplied
// password becomes theirs.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, hashErr
		}
		if err := s.users.SetPassword(ctx, user.ID, string(hash)); err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		s.log.Info().Str("user_id", user.ID).Msg("password set on first login")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrWrongPassword
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	result := &ports.LoginResult{Token: token, User: user}
	if user.Domain != "" {
		result.FormattedDomain = domain.FormatSiteName(user.Domain, s.parentDomain)
	}

	content, err := s.content.FindByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrContentNotFound) {
		return nil, err
	}
	result.WebContent = content

	return result, nil
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	mail, _ := claims["email"].(string)
	if id == "" {
		return nil, domain.ErrInvalidToken
	}
	return &ports.TokenClaims{UserID: id, Email: mail}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
