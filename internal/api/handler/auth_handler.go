package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/siher/webpage-publisher/internal/api/middleware"
	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	// secureCookie controls the Secure/SameSite=None cookie attributes;
	// enabled in production where the frontend lives on another origin.
	secureCookie bool
	tokenTTL     time.Duration
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 72 * time.Hour
	}
	return &AuthHandler{authService: authService, secureCookie: secureCookie, tokenTTL: tokenTTL}
}

// Approve creates a password-less account for an email.
//
// GET /auth/approve?email=
func (h *AuthHandler) Approve(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	user, err := h.authService.Approve(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{
		Message: "User successfully approved",
		Email:   user.Email,
	})
}

// Login authenticates a user and sets the HTTP-only session cookie.
//
// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return domain.ErrInvalidCredentials
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(result.Token))

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		User: loginUserPayload{
			ID:         result.User.ID,
			Email:      result.User.Email,
			Domain:     result.FormattedDomain,
			WebContent: result.WebContent,
		},
	})
}

// ValidateToken checks the session cookie.
//
// GET /auth/validate-token
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}

	if _, err := h.authService.ValidateToken(cookie.Value); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, validateTokenResponse{Success: true})
}

func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.secureCookie {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: sameSite,
	}
}
