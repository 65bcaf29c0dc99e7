package models

import "time"

// Enquiry statuses
const (
	EnquiryStatusNew = "new"
)

// Enquiry represents a tracked member enquiry
type Enquiry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Reference   string    `gorm:"size:20;uniqueIndex" json:"reference"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	MemberID    uint      `gorm:"not null;index" json:"member_id"`
	Status      string    `gorm:"size:20;default:new" json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

// TableName returns the table name for Enquiry
func (Enquiry) TableName() string {
	return "enquiries"
}

// ReferenceSequence tracks the next available reference number per two-digit
// year so references stay unique and sequential even after deletions.
type ReferenceSequence struct {
	Year       int `gorm:"primaryKey" json:"year"`
	NextNumber int `gorm:"default:1" json:"next_number"`
}

// TableName returns the table name for ReferenceSequence
func (ReferenceSequence) TableName() string {
	return "reference_sequences"
}
