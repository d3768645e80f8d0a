package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/LupryM/Barbershop-Durban/internal/audit"
	domain "github.com/LupryM/Barbershop-Durban/internal/domain/appointment"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute marks the appointment cancelled. Cancellation is a status
// write, never a row deletion, so the slot frees up for rebooking.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	callerID uint,
	callerRole string,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	if !domain.CanView(callerRole, callerID, ap) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	if err := domain.CanTransition(domain.Status(ap.Status), domain.StatusCancelled); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusCancelled)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
