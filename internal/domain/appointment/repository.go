package appointment

import (
	"context"

	"github.com/LupryM/Barbershop-Durban/internal/models"
)

// ListFilter narrows a listing to the caller's visibility plus the
// optional query-string filters.
type ListFilter struct {
	Role   string
	UserID uint

	Status string
	Date   string
}

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetActiveBarber(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment (create / reschedule, slot-checked) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)
}
