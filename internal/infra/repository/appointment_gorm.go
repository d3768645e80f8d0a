package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/LupryM/Barbershop-Durban/internal/domain/appointment"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetActiveBarber(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ? AND is_active = ?", id, models.RoleBarber, true).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Slot conflict
// --------------------------------------------------

// assertSlotFree looks for non-cancelled appointments holding the same
// (barber, date, time), locking any it finds so concurrent bookings
// serialize on the slot. excludeID keeps a reschedule from conflicting
// with itself.
func assertSlotFree(
	tx *gorm.DB,
	barberID uint,
	date string,
	timeOfDay string,
	excludeID uint,
) error {

	var conflicts []models.Appointment
	if err := slotConflictQuery(tx, barberID, date, timeOfDay, excludeID).
		Select("id").
		Find(&conflicts).Error; err != nil {
		return err
	}

	if len(conflicts) > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	return nil
}

// slotConflictQuery matches the non-cancelled appointments holding a
// (barber, date, time) slot. Row locking cannot ride on an aggregate,
// so callers fetch the conflicting rows and count them in Go; sqlite
// (tests) has no row locks, and on postgres the partial unique index
// still backstops anything that slips past the lock.
func slotConflictQuery(
	tx *gorm.DB,
	barberID uint,
	date string,
	timeOfDay string,
	excludeID uint,
) *gorm.DB {

	q := tx.Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
			barberID, date, timeOfDay, string(domain.StatusCancelled),
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	return q
}

// --------------------------------------------------
// Appointment (create / reschedule)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertSlotFree(
			tx, ap.BarberID, ap.AppointmentDate, ap.AppointmentTime, 0,
		); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})

	if httperr.IsUniqueConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return err
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertSlotFree(
			tx, ap.BarberID, ap.AppointmentDate, ap.AppointmentTime, ap.ID,
		); err != nil {
			return err
		}
		return tx.Save(ap).Error
	})

	if httperr.IsUniqueConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Barber").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Barber")

	switch f.Role {
	case models.RoleAdmin:
		// unrestricted
	case models.RoleBarber:
		q = q.Where("barber_id = ?", f.UserID)
	default:
		q = q.Where("customer_id = ?", f.UserID)
	}

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("appointment_date = ?", f.Date)
	}

	var aps []models.Appointment
	if err := q.
		Order("appointment_date ASC, appointment_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
