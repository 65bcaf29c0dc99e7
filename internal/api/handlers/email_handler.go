package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/rcbc-digital/enquiry-mail/internal/api/response"
	apperrors "github.com/rcbc-digital/enquiry-mail/internal/errors"
	"github.com/rcbc-digital/enquiry-mail/internal/mailparse"
	"github.com/rcbc-digital/enquiry-mail/internal/services"
	"github.com/rcbc-digital/enquiry-mail/internal/validator"
)

// EmailHandler handles email parsing HTTP requests
type EmailHandler struct {
	parser      *mailparse.Parser
	enquiries   *services.EnquiryService
	maxUploadMB int
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(parser *mailparse.Parser, enquiries *services.EnquiryService, maxUploadMB int) *EmailHandler {
	return &EmailHandler{
		parser:      parser,
		enquiries:   enquiries,
		maxUploadMB: maxUploadMB,
	}
}

// Parse handles POST /api/emails/parse
//
// Accepts a multipart upload in the "email_file" field plus optional
// "mode" (snippet|plain|full) and "skip_attachments" form values.
func (h *EmailHandler) Parse(c echo.Context) error {
	parsed, err := h.parseUpload(c)
	if parsed == nil {
		return err
	}
	return response.Success(c, parsed)
}

// CreateEnquiry handles POST /api/enquiries/from-email
//
// Parses the uploaded container and opens an enquiry for the matching member.
func (h *EmailHandler) CreateEnquiry(c echo.Context) error {
	parsed, err := h.parseUpload(c)
	if parsed == nil {
		return err
	}

	createdBy := c.FormValue("created_by")
	if createdBy == "" {
		createdBy = "system"
	}

	result, err := h.enquiries.CreateFromEmail(c.Request().Context(), parsed, createdBy)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

// parseUpload stages the uploaded container on disk and runs the parser.
// On failure the response has already been written and the returned parsed
// email is nil.
func (h *EmailHandler) parseUpload(c echo.Context) (*mailparse.ParsedEmail, error) {
	fileHeader, err := c.FormFile("email_file")
	if err != nil {
		return nil, response.BadRequest(c, "email_file is required")
	}

	if err := validator.ValidateEmailUpload(fileHeader.Filename, fileHeader.Size, h.maxUploadMB); err != nil {
		return nil, response.Error(c, err)
	}

	mode, err := bodyMode(c.FormValue("mode"))
	if err != nil {
		return nil, response.BadRequest(c, err.Error())
	}
	skipAttachments := c.FormValue("skip_attachments") == "true"

	path, cleanup, err := stageUpload(fileHeader)
	if err != nil {
		return nil, response.InternalError(c, "failed to store uploaded file")
	}
	defer cleanup()

	parsed, err := h.parser.Parse(path, mode, skipAttachments)
	if err != nil {
		return nil, response.Error(c, fmt.Errorf("%w: %v", apperrors.ErrParsing, err))
	}
	return parsed, nil
}

// bodyMode maps the form value to a BodyMode, defaulting to full.
func bodyMode(value string) (mailparse.BodyMode, error) {
	switch value {
	case "", string(mailparse.ModeFull):
		return mailparse.ModeFull, nil
	case string(mailparse.ModeSnippet):
		return mailparse.ModeSnippet, nil
	case string(mailparse.ModePlain):
		return mailparse.ModePlain, nil
	default:
		return "", errors.New("mode must be one of: snippet, plain, full")
	}
}

// stageUpload writes the multipart file to a temp path, preserving the
// extension so the container registry can route it.
func stageUpload(fileHeader *multipart.FileHeader) (string, func(), error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	ext := filepath.Ext(fileHeader.Filename)
	tmp, err := os.CreateTemp("", "email-upload-*"+ext)
	if err != nil {
		return "", nil, err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}

	cleanup := func() { os.Remove(tmp.Name()) }
	return tmp.Name(), cleanup, nil
}
