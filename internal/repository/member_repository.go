package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rcbc-digital/enquiry-mail/internal/models"
)

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	// ListActiveByEmail returns all active members whose email matches
	// case-insensitively, ordered by ID. Ambiguity is resolved by the
	// caller.
	ListActiveByEmail(ctx context.Context, email string) ([]models.Member, error)
}

// memberRepository implements MemberRepository using GORM
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository instance
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member record
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	result := r.db.WithContext(ctx).Create(member)
	if result.Error != nil {
		return fmt.Errorf("failed to create member: %w", result.Error)
	}
	return nil
}

// GetByID retrieves a member by its ID
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	result := r.db.WithContext(ctx).First(&member, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member by ID: %w", result.Error)
	}
	return &member, nil
}

// ListActiveByEmail retrieves all active members matching an email address
func (r *memberRepository) ListActiveByEmail(ctx context.Context, email string) ([]models.Member, error) {
	var members []models.Member
	result := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) AND is_active = ?", email, true).
		Order("id").
		Find(&members)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list members by email: %w", result.Error)
	}
	return members, nil
}
