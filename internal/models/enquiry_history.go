package models

import "time"

// EnquiryHistory represents one note in an enquiry's audit trail
type EnquiryHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EnquiryID uint      `gorm:"not null;index" json:"enquiry_id"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedBy string    `gorm:"size:255" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Enquiry Enquiry `gorm:"foreignKey:EnquiryID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for EnquiryHistory
func (EnquiryHistory) TableName() string {
	return "enquiry_histories"
}
