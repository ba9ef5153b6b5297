package handler

import "github.com/siher/webpage-publisher/internal/core/domain"

// messageResponse is the standard success envelope.
type messageResponse struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginUserPayload struct {
	ID         string             `json:"id"`
	Email      string             `json:"email"`
	Domain     string             `json:"domain"`
	WebContent *domain.WebContent `json:"webContent"`
}

type loginResponse struct {
	Message string           `json:"message"`
	User    loginUserPayload `json:"user"`
}

type validateTokenResponse struct {
	Success bool `json:"success"`
}

// --- Web content ---

type updateContentResponse struct {
	Message     string `json:"message"`
	ContentHash string `json:"contentHash"`
}

// --- Domain ---

type publishDomainRequest struct {
	Domain string `json:"domain" validate:"required,hostname_rfc1123"`
}

type publishDomainResponse struct {
	Domain string `json:"domain"`
}
