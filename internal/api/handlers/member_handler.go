package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rcbc-digital/enquiry-mail/internal/api/response"
	"github.com/rcbc-digital/enquiry-mail/internal/models"
	"github.com/rcbc-digital/enquiry-mail/internal/repository"
	"github.com/rcbc-digital/enquiry-mail/internal/validator"
)

// MemberHandler handles member HTTP requests
type MemberHandler struct {
	memberRepo repository.MemberRepository
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberRepo repository.MemberRepository) *MemberHandler {
	return &MemberHandler{memberRepo: memberRepo}
}

// CreateMemberRequest is the payload for creating a member
type CreateMemberRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Ward     string `json:"ward"`
}

// Create handles POST /api/members
func (h *MemberHandler) Create(c echo.Context) error {
	var req CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return response.BadRequest(c, "full_name is required")
	}
	if err := validator.ValidateEmailAddress(req.Email); err != nil {
		return response.BadRequest(c, "invalid email address")
	}

	member := &models.Member{
		FullName: req.FullName,
		Email:    req.Email,
		Ward:     req.Ward,
		IsActive: true,
	}
	if err := h.memberRepo.Create(c.Request().Context(), member); err != nil {
		return response.InternalError(c, "failed to create member")
	}

	return response.Created(c, member)
}

// Get handles GET /api/members/:id
func (h *MemberHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid member ID")
	}

	member, err := h.memberRepo.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "member not found")
		}
		return response.InternalError(c, "failed to get member")
	}

	return response.Success(c, member)
}
