package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

// sectionNames are the recognized content sections a request may supply.
var sectionNames = []string{
	"landing", "slider", "value", "live",
	"organizations", "timeline", "available", "socialChannels",
}

type WebContentHandler struct {
	service ports.WebContentService
}

func NewWebContentHandler(service ports.WebContentService) *WebContentHandler {
	return &WebContentHandler{service: service}
}

// Publish renders and publishes the caller's page.
//
// POST /webcontent/publish
func (h *WebContentHandler) Publish(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	input, err := parseContentInput(c)
	if err != nil {
		return err
	}

	if _, err := h.service.Publish(c.Request().Context(), userID, input); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Published successfully"})
}

// Update re-renders the caller's page over the persisted sections.
//
// POST /webcontent/update
func (h *WebContentHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	input, err := parseContentInput(c)
	if err != nil {
		return err
	}

	record, err := h.service.Update(c.Request().Context(), userID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateContentResponse{
		Message:     "Content updated successfully",
		ContentHash: record.ContentHash,
	})
}

// Get returns the caller's content record.
//
// GET /webcontent
func (h *WebContentHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	record, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// Delete removes the caller's page and its artifact.
//
// DELETE /webcontent
func (h *WebContentHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Web content deleted successfully"})
}

// parseContentInput accepts either a JSON body of section objects or a
// multipart form whose section fields carry JSON strings alongside media
// file fields.
func parseContentInput(c echo.Context) (ports.ContentInput, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return parseMultipartInput(c)
	}

	var patch domain.SectionPatch
	if err := c.Bind(&patch); err != nil {
		return ports.ContentInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return ports.ContentInput{Sections: patch}, nil
}

func parseMultipartInput(c echo.Context) (ports.ContentInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return ports.ContentInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	raw := make(map[string]json.RawMessage, len(sectionNames))
	for _, name := range sectionNames {
		if vals, ok := form.Value[name]; ok && len(vals) > 0 && vals[0] != "" {
			raw[name] = json.RawMessage(vals[0])
		}
	}

	var patch domain.SectionPatch
	if len(raw) > 0 {
		blob, _ := json.Marshal(raw)
		if err := json.Unmarshal(blob, &patch); err != nil {
			return ports.ContentInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid section payload")
		}
	}

	var attachments []ports.Attachment
	for field, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return ports.ContentInput{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable file field "+field)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return ports.ContentInput{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable file field "+field)
		}
		attachments = append(attachments, ports.Attachment{
			Field:       field,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Data:        data,
		})
	}

	return ports.ContentInput{Sections: patch, Attachments: attachments}, nil
}
