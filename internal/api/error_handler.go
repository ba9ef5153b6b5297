package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/render"
)

// errorResponse is the canonical error envelope: every failure path returns
// a JSON body with at least a message field.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected and upstream errors internally without leaking
//     response bodies or secrets to the client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Template/content mismatch: caller-correctable, report the locator.
	var re *render.Error
	if errors.As(err, &re) {
		return http.StatusBadRequest, re.Error()
	}

	// Artifact store failure: upstream dependency fault. The remote body is
	// already logged by the client; the user gets a generic message.
	var se *domain.StorageError
	if errors.As(err, &se) {
		log.Error().Err(err).
			Str("op", se.Op).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("artifact store failure")
		return http.StatusBadGateway, "Content storage service unavailable"
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Email and password are required"
	case errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest, "Invalid email format"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User does not exist"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, domain.ErrWrongPassword):
		return http.StatusForbidden, "Incorrect password"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusForbidden, "Invalid or expired token"
	case errors.Is(err, domain.ErrMissingContent):
		return http.StatusBadRequest, "Missing content data"
	case errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound, "No web content found to update"
	case errors.Is(err, domain.ErrUpdateInProgress):
		return http.StatusConflict, "Another publish is already in progress"
	case errors.Is(err, domain.ErrDomainRequired):
		return http.StatusBadRequest, "Domain is required."
	case errors.Is(err, domain.ErrDomainTaken):
		return http.StatusBadRequest, "Subdomain already registered."
	case errors.Is(err, domain.ErrNoPublishedContent):
		return http.StatusBadRequest, "Before selecting your domain name, please publish your webpage first."
	case errors.Is(err, domain.ErrRegistrationFailed):
		return http.StatusBadRequest, "Could not register subdomain."
	case errors.Is(err, domain.ErrRegistrarFailed):
		log.Error().Err(err).Str("path", c.Path()).Msg("registrar failure after update")
		return http.StatusBadGateway, "Content updated but subdomain registration failed; please retry"
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return http.StatusConflict, "Email is already subscribed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
