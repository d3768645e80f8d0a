package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/LupryM/Barbershop-Durban/internal/audit"
	domain "github.com/LupryM/Barbershop-Durban/internal/domain/appointment"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID uint
	BarberID   uint

	ServiceName     string
	ServicePrice    string
	ServiceDuration string

	Date string // 2006-01-02
	Time string // 15:04
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if strings.TrimSpace(in.ServiceName) == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	if !validDate(in.Date) || !validTime(in.Time) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	barber, err := uc.repo.GetActiveBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	ap := &models.Appointment{
		CustomerID:      in.CustomerID,
		BarberID:        barber.ID,
		ServiceName:     in.ServiceName,
		ServicePrice:    in.ServicePrice,
		ServiceDuration: in.ServiceDuration,
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Status:          string(domain.InitialStatus()),
	}

	// Slot check and insert run in one transaction inside the repo.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CustomerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// ======================================================
// HELPERS
// ======================================================

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
