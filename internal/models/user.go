package models

import "time"

const (
	RoleCustomer = "customer"
	RoleBarber   = "barber"
	RoleAdmin    = "admin"
)

// User covers everyone who logs in: customers, barbers and admins.
// The phone number is the login key.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Phone string `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Name  string `gorm:"size:100" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Role  string `gorm:"size:20;default:'customer'" json:"role"`

	// Staff-maintained customer record
	Notes       string `gorm:"size:500" json:"notes"`
	Preferences string `gorm:"size:500" json:"preferences"`

	// Barber directory profile
	Specialty  string `gorm:"size:100" json:"specialty,omitempty"`
	Experience string `gorm:"size:50" json:"experience,omitempty"`
	ImageURL   string `gorm:"size:255" json:"image_url,omitempty"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

func IsStaff(role string) bool {
	return role == RoleBarber || role == RoleAdmin
}
