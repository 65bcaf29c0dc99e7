// Package services holds the application services that sit between the
// parsing core and persistence.
package services

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/rcbc-digital/enquiry-mail/internal/errors"
	"github.com/rcbc-digital/enquiry-mail/internal/mailparse"
	"github.com/rcbc-digital/enquiry-mail/internal/models"
	"github.com/rcbc-digital/enquiry-mail/internal/repository"
)

// titleMaxLength caps enquiry titles to the column limit.
const titleMaxLength = 255

// EnquiryService creates enquiries from parsed emails.
type EnquiryService struct {
	members   repository.MemberRepository
	enquiries repository.EnquiryRepository
	logger    *slog.Logger
}

// NewEnquiryService creates a new EnquiryService instance
func NewEnquiryService(members repository.MemberRepository, enquiries repository.EnquiryRepository, logger *slog.Logger) *EnquiryService {
	return &EnquiryService{
		members:   members,
		enquiries: enquiries,
		logger:    logger,
	}
}

// CreateFromEmailResult is the outcome of a successful enquiry creation.
type CreateFromEmailResult struct {
	Enquiry *models.Enquiry `json:"enquiry"`
	Member  *models.Member  `json:"member"`
}

// CreateFromEmail resolves the sender of a parsed email to an active member
// and creates an enquiry with an initial history note. Ambiguous matches fall
// back to the first active member; zero matches are a reported error, not a
// crash.
func (s *EnquiryService) CreateFromEmail(ctx context.Context, parsed *mailparse.ParsedEmail, createdBy string) (*CreateFromEmailResult, error) {
	senderEmail, ok := mailparse.ExtractSenderAddress(parsed)
	if !ok {
		return nil, apperrors.ErrNoSenderAddress
	}

	member, err := s.resolveMember(ctx, senderEmail)
	if err != nil {
		return nil, err
	}

	title := parsed.Subject
	if title == "" {
		title = "Email Enquiry"
	}
	if runes := []rune(title); len(runes) > titleMaxLength {
		title = string(runes[:titleMaxLength])
	}
	description := parsed.BodyContent
	if description == "" {
		description = "No content available"
	}

	enquiry := &models.Enquiry{
		Title:       title,
		Description: description,
		MemberID:    member.ID,
		Status:      models.EnquiryStatusNew,
	}
	history := &models.EnquiryHistory{
		Note:      fmt.Sprintf("Enquiry created from email sent on %s", parsed.EmailDateStr),
		CreatedBy: createdBy,
	}

	if err := s.enquiries.CreateWithHistory(ctx, enquiry, history); err != nil {
		return nil, fmt.Errorf("failed to create enquiry from email: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("enquiry created from email",
			slog.String("reference", enquiry.Reference),
			slog.String("member_email", member.Email))
	}
	return &CreateFromEmailResult{Enquiry: enquiry, Member: member}, nil
}

// resolveMember finds the active member for a sender address.
func (s *EnquiryService) resolveMember(ctx context.Context, email string) (*models.Member, error) {
	members, err := s.members.ListActiveByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	switch len(members) {
	case 0:
		return nil, fmt.Errorf("%w with email address: %s", apperrors.ErrNoActiveMember, email)
	case 1:
		return &members[0], nil
	default:
		if s.logger != nil {
			s.logger.Warn("multiple active members share an email, using first",
				slog.String("email", email),
				slog.Int("count", len(members)))
		}
		return &members[0], nil
	}
}
