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

// ======================================================
// INPUT
// ======================================================

// A PATCH may reschedule, change status, or both in one call. The two
// concerns are gated independently: reschedules go through the slot
// check, status changes through the transition table and role gate.
type UpdateAppointmentInput struct {
	AppointmentID uint

	CallerID   uint
	CallerRole string

	Date   *string
	Time   *string
	Status *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	if !domain.CanView(in.CallerRole, in.CallerID, ap) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	// --------------------------------------------------
	// Status transition
	// --------------------------------------------------
	var action string

	if in.Status != nil {
		if !domain.IsStatus(*in.Status) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}

		target := domain.Status(*in.Status)

		if err := domain.AssertCanSetStatus(in.CallerRole, target); err != nil {
			return nil, err
		}
		if err := domain.CanTransition(domain.Status(ap.Status), target); err != nil {
			return nil, err
		}

		ap.Status = string(target)
		action = "appointment_" + *in.Status
	}

	// --------------------------------------------------
	// Reschedule
	// --------------------------------------------------
	rescheduled := false

	if in.Date != nil {
		if !validDate(*in.Date) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		if *in.Date != ap.AppointmentDate {
			ap.AppointmentDate = *in.Date
			rescheduled = true
		}
	}

	if in.Time != nil {
		if !validTime(*in.Time) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		if *in.Time != ap.AppointmentTime {
			ap.AppointmentTime = *in.Time
			rescheduled = true
		}
	}

	if in.Status == nil && !rescheduled {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	if rescheduled {
		// the slot check skips the appointment's own row
		err = uc.repo.RescheduleAppointment(ctx, ap)
		if action == "" {
			action = "appointment_rescheduled"
		}
	} else {
		err = uc.repo.UpdateAppointment(ctx, ap)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CallerID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
