package handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rcbc-digital/enquiry-mail/internal/api/response"
	"github.com/rcbc-digital/enquiry-mail/internal/repository"
)

// EnquiryHandler handles enquiry lookup HTTP requests
type EnquiryHandler struct {
	enquiryRepo repository.EnquiryRepository
}

// NewEnquiryHandler creates a new EnquiryHandler
func NewEnquiryHandler(enquiryRepo repository.EnquiryRepository) *EnquiryHandler {
	return &EnquiryHandler{enquiryRepo: enquiryRepo}
}

// Get handles GET /api/enquiries/:id
func (h *EnquiryHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid enquiry ID")
	}

	enquiry, err := h.enquiryRepo.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "enquiry not found")
		}
		return response.InternalError(c, "failed to get enquiry")
	}

	return response.Success(c, enquiry)
}

// GetByReference handles GET /api/enquiries/reference/:reference
func (h *EnquiryHandler) GetByReference(c echo.Context) error {
	reference := c.Param("reference")
	if reference == "" {
		return response.BadRequest(c, "reference is required")
	}

	enquiry, err := h.enquiryRepo.GetByReference(c.Request().Context(), reference)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "enquiry not found")
		}
		return response.InternalError(c, "failed to get enquiry")
	}

	return response.Success(c, enquiry)
}
