package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

type DomainHandler struct {
	service ports.DomainService
}

func NewDomainHandler(service ports.DomainService) *DomainHandler {
	return &DomainHandler{service: service}
}

// Publish binds a subdomain name to the caller's published content.
//
// POST /domain/publish
func (h *DomainHandler) Publish(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req publishDomainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Domain == "" {
		return domain.ErrDomainRequired
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	site, err := h.service.PublishDomain(c.Request().Context(), userID, req.Domain)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publishDomainResponse{Domain: site})
}
