package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rcbc-digital/enquiry-mail/internal/models"
)

// EnquiryRepository defines the interface for enquiry data access
type EnquiryRepository interface {
	// CreateWithHistory creates an enquiry and its initial history entry in
	// one transaction, assigning the next sequential reference.
	CreateWithHistory(ctx context.Context, enquiry *models.Enquiry, history *models.EnquiryHistory) error
	GetByID(ctx context.Context, id uint) (*models.Enquiry, error)
	GetByReference(ctx context.Context, reference string) (*models.Enquiry, error)
}

// enquiryRepository implements EnquiryRepository using GORM
type enquiryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEnquiryRepository creates a new EnquiryRepository instance
func NewEnquiryRepository(db *gorm.DB) EnquiryRepository {
	return &enquiryRepository{db: db, now: time.Now}
}

// CreateWithHistory creates an enquiry with its first history note
func (r *enquiryRepository) CreateWithHistory(ctx context.Context, enquiry *models.Enquiry, history *models.EnquiryHistory) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reference, err := r.nextReference(tx)
		if err != nil {
			return err
		}
		enquiry.Reference = reference

		if err := tx.Create(enquiry).Error; err != nil {
			return fmt.Errorf("failed to create enquiry: %w", err)
		}

		if history != nil {
			history.EnquiryID = enquiry.ID
			if err := tx.Create(history).Error; err != nil {
				return fmt.Errorf("failed to create enquiry history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create enquiry with history: %w", err)
	}
	return nil
}

// nextReference allocates the next "MEM-yy-nnnn" reference for the current
// year, locking the sequence row so concurrent creates stay unique.
func (r *enquiryRepository) nextReference(tx *gorm.DB) (string, error) {
	year := r.now().Year() % 100

	// SQLite has no row locking; its writes are serialized anyway.
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var seq models.ReferenceSequence
	err := tx.
		Where(models.ReferenceSequence{Year: year}).
		Attrs(models.ReferenceSequence{NextNumber: 1}).
		FirstOrCreate(&seq).Error
	if err != nil {
		return "", fmt.Errorf("failed to load reference sequence: %w", err)
	}

	number := seq.NextNumber
	reference := fmt.Sprintf("MEM-%02d-%04d", year, number)

	// Skip over references that already exist; rare, but deletions and
	// manual inserts can leave gaps.
	for {
		var count int64
		if err := tx.Model(&models.Enquiry{}).Where("reference = ?", reference).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check reference uniqueness: %w", err)
		}
		if count == 0 {
			break
		}
		number++
		reference = fmt.Sprintf("MEM-%02d-%04d", year, number)
	}

	seq.NextNumber = number + 1
	if err := tx.Save(&seq).Error; err != nil {
		return "", fmt.Errorf("failed to advance reference sequence: %w", err)
	}
	return reference, nil
}

// GetByID retrieves an enquiry by its ID
func (r *enquiryRepository) GetByID(ctx context.Context, id uint) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	result := r.db.WithContext(ctx).First(&enquiry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get enquiry by ID: %w", result.Error)
	}
	return &enquiry, nil
}

// GetByReference retrieves an enquiry by its reference
func (r *enquiryRepository) GetByReference(ctx context.Context, reference string) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	result := r.db.WithContext(ctx).Where("reference = ?", reference).First(&enquiry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get enquiry by reference: %w", result.Error)
	}
	return &enquiry, nil
}
