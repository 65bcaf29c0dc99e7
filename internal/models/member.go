package models

// Member represents an elected member who can raise enquiries by email
type Member struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255;not null" json:"full_name"`
	Email    string `gorm:"size:255;not null;index" json:"email"`
	Ward     string `gorm:"size:255" json:"ward"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`
}

// TableName returns the table name for Member
func (Member) TableName() string {
	return "members"
}
