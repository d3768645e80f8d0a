package models

import "time"

const (
	AvailabilityUnavailable = "unavailable"
	AvailabilityLunch       = "lunch"
	AvailabilityTimeOff     = "time_off"
)

// BarberAvailability is a manually declared unavailability window
// (lunch, time off) for a barber on a given date.
type BarberAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"index;not null" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      string `gorm:"size:10;not null;index" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Type   string `gorm:"size:20;default:'unavailable'" json:"type"`
	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func IsAvailabilityType(t string) bool {
	switch t {
	case AvailabilityUnavailable, AvailabilityLunch, AvailabilityTimeOff:
		return true
	}
	return false
}
