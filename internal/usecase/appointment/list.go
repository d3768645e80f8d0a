package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/LupryM/Barbershop-Durban/internal/domain/appointment"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists appointments inside the caller's visibility, optionally
// narrowed by status and date.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller *models.User,
	status string,
	date string,
) ([]models.Appointment, error) {

	if status != "" && !domain.IsStatus(status) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	if date != "" && !validDate(date) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	return uc.repo.ListAppointments(ctx, domain.ListFilter{
		Role:   caller.Role,
		UserID: caller.ID,
		Status: status,
		Date:   date,
	})
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	caller *models.User,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	if !domain.CanView(caller.Role, caller.ID, ap) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	return ap, nil
}
