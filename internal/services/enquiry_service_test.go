package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rcbc-digital/enquiry-mail/internal/errors"
	"github.com/rcbc-digital/enquiry-mail/internal/mailparse"
	"github.com/rcbc-digital/enquiry-mail/internal/models"
)

// fakeMemberRepo serves canned members keyed by lowercased email.
type fakeMemberRepo struct {
	members map[string][]models.Member
	err     error
}

func (f *fakeMemberRepo) Create(ctx context.Context, member *models.Member) error { return nil }

func (f *fakeMemberRepo) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMemberRepo) ListActiveByEmail(ctx context.Context, email string) ([]models.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.members[strings.ToLower(email)], nil
}

// fakeEnquiryRepo records the created enquiry and history.
type fakeEnquiryRepo struct {
	enquiry *models.Enquiry
	history *models.EnquiryHistory
	err     error
}

func (f *fakeEnquiryRepo) CreateWithHistory(ctx context.Context, enquiry *models.Enquiry, history *models.EnquiryHistory) error {
	if f.err != nil {
		return f.err
	}
	enquiry.ID = 1
	enquiry.Reference = "MEM-24-0001"
	if history != nil {
		history.EnquiryID = enquiry.ID
	}
	f.enquiry = enquiry
	f.history = history
	return nil
}

func (f *fakeEnquiryRepo) GetByID(ctx context.Context, id uint) (*models.Enquiry, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEnquiryRepo) GetByReference(ctx context.Context, reference string) (*models.Enquiry, error) {
	return nil, errors.New("not implemented")
}

func parsedEmailFixture() *mailparse.ParsedEmail {
	return &mailparse.ParsedEmail{
		RawFrom:      "John Smith <john@example.com>",
		EmailFrom:    "John Smith <john@example.com>",
		Subject:      "Broken street light",
		BodyContent:  "The light outside number 12 is out.",
		EmailDateStr: "Jun 15, 2024 10:00 BST",
	}
}

func TestCreateFromEmail_Success(t *testing.T) {
	members := &fakeMemberRepo{members: map[string][]models.Member{
		"john@example.com": {{ID: 7, FullName: "John Smith", Email: "john@example.com", IsActive: true}},
	}}
	enquiries := &fakeEnquiryRepo{}
	svc := NewEnquiryService(members, enquiries, nil)

	result, err := svc.CreateFromEmail(context.Background(), parsedEmailFixture(), "operator")
	require.NoError(t, err)

	assert.Equal(t, "MEM-24-0001", result.Enquiry.Reference)
	assert.Equal(t, "Broken street light", result.Enquiry.Title)
	assert.Equal(t, "The light outside number 12 is out.", result.Enquiry.Description)
	assert.Equal(t, uint(7), result.Enquiry.MemberID)
	assert.Equal(t, models.EnquiryStatusNew, result.Enquiry.Status)
	assert.Equal(t, "John Smith", result.Member.FullName)

	require.NotNil(t, enquiries.history)
	assert.Equal(t, "Enquiry created from email sent on Jun 15, 2024 10:00 BST", enquiries.history.Note)
	assert.Equal(t, "operator", enquiries.history.CreatedBy)
}

func TestCreateFromEmail_NoSenderAddress(t *testing.T) {
	svc := NewEnquiryService(&fakeMemberRepo{}, &fakeEnquiryRepo{}, nil)

	parsed := parsedEmailFixture()
	parsed.EmailFrom = "Unknown Sender"
	parsed.RawFrom = ""

	_, err := svc.CreateFromEmail(context.Background(), parsed, "operator")
	assert.ErrorIs(t, err, apperrors.ErrNoSenderAddress)
}

func TestCreateFromEmail_NoActiveMember(t *testing.T) {
	svc := NewEnquiryService(&fakeMemberRepo{members: map[string][]models.Member{}}, &fakeEnquiryRepo{}, nil)

	_, err := svc.CreateFromEmail(context.Background(), parsedEmailFixture(), "operator")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoActiveMember)
	assert.Contains(t, err.Error(), "john@example.com")
}

func TestCreateFromEmail_AmbiguousMatchUsesFirst(t *testing.T) {
	members := &fakeMemberRepo{members: map[string][]models.Member{
		"john@example.com": {
			{ID: 3, FullName: "First Match", IsActive: true},
			{ID: 9, FullName: "Second Match", IsActive: true},
		},
	}}
	svc := NewEnquiryService(members, &fakeEnquiryRepo{}, nil)

	result, err := svc.CreateFromEmail(context.Background(), parsedEmailFixture(), "operator")
	require.NoError(t, err)
	assert.Equal(t, uint(3), result.Member.ID)
}

func TestCreateFromEmail_TitleAndDescriptionFallbacks(t *testing.T) {
	members := &fakeMemberRepo{members: map[string][]models.Member{
		"john@example.com": {{ID: 1, IsActive: true}},
	}}
	enquiries := &fakeEnquiryRepo{}
	svc := NewEnquiryService(members, enquiries, nil)

	parsed := parsedEmailFixture()
	parsed.Subject = ""
	parsed.BodyContent = ""

	result, err := svc.CreateFromEmail(context.Background(), parsed, "operator")
	require.NoError(t, err)
	assert.Equal(t, "Email Enquiry", result.Enquiry.Title)
	assert.Equal(t, "No content available", result.Enquiry.Description)
}

func TestCreateFromEmail_TitleTruncated(t *testing.T) {
	members := &fakeMemberRepo{members: map[string][]models.Member{
		"john@example.com": {{ID: 1, IsActive: true}},
	}}
	svc := NewEnquiryService(members, &fakeEnquiryRepo{}, nil)

	parsed := parsedEmailFixture()
	parsed.Subject = strings.Repeat("x", 300)

	result, err := svc.CreateFromEmail(context.Background(), parsed, "operator")
	require.NoError(t, err)
	assert.Len(t, result.Enquiry.Title, 255)
}

func TestCreateFromEmail_RepositoryFailure(t *testing.T) {
	members := &fakeMemberRepo{members: map[string][]models.Member{
		"john@example.com": {{ID: 1, IsActive: true}},
	}}
	enquiries := &fakeEnquiryRepo{err: errors.New("database unavailable")}
	svc := NewEnquiryService(members, enquiries, nil)

	_, err := svc.CreateFromEmail(context.Background(), parsedEmailFixture(), "operator")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestCreateFromEmail_MemberLookupFailure(t *testing.T) {
	members := &fakeMemberRepo{err: errors.New("connection refused")}
	svc := NewEnquiryService(members, &fakeEnquiryRepo{}, nil)

	_, err := svc.CreateFromEmail(context.Background(), parsedEmailFixture(), "operator")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
