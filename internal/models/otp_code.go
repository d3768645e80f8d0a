package models

import "time"

// OtpCode is a transient login code. Several may be outstanding for the
// same phone; each is single-use and expires ten minutes after issue.
type OtpCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"size:20;not null;index" json:"phone"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}
