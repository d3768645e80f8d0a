package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	BarberID uint `gorm:"index" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber"`

	ServiceName     string `gorm:"size:100;not null" json:"service_name"`
	ServicePrice    string `gorm:"size:20" json:"service_price"`
	ServiceDuration string `gorm:"size:20" json:"service_duration"`

	// Kept as the wire strings the booking wizard sends ("2006-01-02" / "15:04").
	// The anti-double-booking index lives on (barber_id, date, time).
	AppointmentDate string `gorm:"size:10;not null;index" json:"appointment_date"`
	AppointmentTime string `gorm:"size:5;not null" json:"appointment_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
