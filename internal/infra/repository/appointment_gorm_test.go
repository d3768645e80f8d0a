package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/LupryM/Barbershop-Durban/internal/domain/appointment"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.BarberAvailability{},
		&models.OtpCode{},
		&models.Session{},
		&models.AuditLog{},
	))

	return db
}

func seedUsers(t *testing.T, db *gorm.DB) (customer, barber models.User) {
	t.Helper()

	customer = models.User{Phone: "+27821111111", Name: "Thabo", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)

	barber = models.User{
		Phone:     "+27822222222",
		Name:      "Sipho Nkosi",
		Role:      models.RoleBarber,
		Specialty: "Fade Specialist",
		IsActive:  true,
	}
	require.NoError(t, db.Create(&barber).Error)

	return customer, barber
}

func booking(customerID, barberID uint, date, timeOfDay, status string) *models.Appointment {
	return &models.Appointment{
		CustomerID:      customerID,
		BarberID:        barberID,
		ServiceName:     "Normal Haircut",
		ServicePrice:    "R100",
		ServiceDuration: "30 min",
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
		Status:          status,
	}
}

func TestCreateAppointment_RejectsTakenSlot(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	customer, barber := seedUsers(t, db)

	first := booking(customer.ID, barber.ID, "2025-06-10", "10:00", "pending")
	require.NoError(t, repo.CreateAppointment(ctx, first))
	assert.NotZero(t, first.ID)

	second := booking(customer.ID, barber.ID, "2025-06-10", "10:00", "pending")
	err := repo.CreateAppointment(ctx, second)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	// a confirmed appointment blocks the slot too
	third := booking(customer.ID, barber.ID, "2025-06-10", "11:00", "confirmed")
	require.NoError(t, repo.CreateAppointment(ctx, third))

	fourth := booking(customer.ID, barber.ID, "2025-06-10", "11:00", "pending")
	err = repo.CreateAppointment(ctx, fourth)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestCreateAppointment_CancelledSlotIsFree(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	customer, barber := seedUsers(t, db)

	first := booking(customer.ID, barber.ID, "2025-06-10", "10:00", "pending")
	require.NoError(t, repo.CreateAppointment(ctx, first))

	first.Status = string(domain.StatusCancelled)
	require.NoError(t, repo.UpdateAppointment(ctx, first))

	// cancellation frees the slot for rebooking
	second := booking(customer.ID, barber.ID, "2025-06-10", "10:00", "pending")
	assert.NoError(t, repo.CreateAppointment(ctx, second))
}

func TestRescheduleAppointment_ExcludesOwnRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	customer, barber := seedUsers(t, db)

	ap := booking(customer.ID, barber.ID, "2025-06-10", "10:00", "pending")
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	// unchanged date/time must not conflict with itself
	assert.NoError(t, repo.RescheduleAppointment(ctx, ap))

	// moving onto another booking's slot conflicts
	other := booking(customer.ID, barber.ID, "2025-06-10", "11:00", "pending")
	require.NoError(t, repo.CreateAppointment(ctx, other))

	ap.AppointmentTime = "11:00"
	err := repo.RescheduleAppointment(ctx, ap)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

// newDryRunPostgres opens a postgres-dialector session that renders SQL
// without touching a server, so the locking branch stays under test.
func newDryRunPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=xclusive dbname=xclusive_test",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db
}

func TestSlotConflictQuery_PostgresLocksRows(t *testing.T) {
	db := newDryRunPostgres(t)

	var conflicts []models.Appointment
	res := slotConflictQuery(db, 7, "2025-06-10", "10:00", 0).
		Select("id").
		Find(&conflicts)
	require.NoError(t, res.Error)

	sql := res.Statement.SQL.String()
	assert.Contains(t, sql, "FOR UPDATE")
	// postgres rejects FOR UPDATE on aggregates, so the rows must be
	// fetched and counted in Go
	assert.NotContains(t, sql, "count(")

	res = slotConflictQuery(db, 7, "2025-06-10", "10:00", 42).
		Select("id").
		Find(&conflicts)
	require.NoError(t, res.Error)
	assert.Contains(t, res.Statement.SQL.String(), "id <> ")
}

func TestSlotConflictQuery_SqliteSkipsLocking(t *testing.T) {
	db := newTestDB(t)

	var conflicts []models.Appointment
	res := slotConflictQuery(
		db.Session(&gorm.Session{DryRun: true}), 7, "2025-06-10", "10:00", 0,
	).
		Select("id").
		Find(&conflicts)
	require.NoError(t, res.Error)

	assert.NotContains(t, res.Statement.SQL.String(), "FOR UPDATE")
}

func TestListAppointments_RoleScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	customer, barber := seedUsers(t, db)

	otherCustomer := models.User{Phone: "+27823333333", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&otherCustomer).Error)

	otherBarber := models.User{Phone: "+27824444444", Role: models.RoleBarber, IsActive: true}
	require.NoError(t, db.Create(&otherBarber).Error)

	require.NoError(t, repo.CreateAppointment(ctx, booking(customer.ID, barber.ID, "2025-06-10", "10:00", "pending")))
	require.NoError(t, repo.CreateAppointment(ctx, booking(otherCustomer.ID, barber.ID, "2025-06-10", "11:00", "confirmed")))
	require.NoError(t, repo.CreateAppointment(ctx, booking(otherCustomer.ID, otherBarber.ID, "2025-06-11", "09:00", "pending")))

	mine, err := repo.ListAppointments(ctx, domain.ListFilter{Role: models.RoleCustomer, UserID: customer.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	schedule, err := repo.ListAppointments(ctx, domain.ListFilter{Role: models.RoleBarber, UserID: barber.ID})
	require.NoError(t, err)
	assert.Len(t, schedule, 2)

	everything, err := repo.ListAppointments(ctx, domain.ListFilter{Role: models.RoleAdmin, UserID: 999})
	require.NoError(t, err)
	assert.Len(t, everything, 3)

	// query filters on top of the scope
	confirmed, err := repo.ListAppointments(ctx, domain.ListFilter{
		Role: models.RoleAdmin, Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	day, err := repo.ListAppointments(ctx, domain.ListFilter{
		Role: models.RoleAdmin, Date: "2025-06-11",
	})
	require.NoError(t, err)
	assert.Len(t, day, 1)
}

func TestGetActiveBarber(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	customer, barber := seedUsers(t, db)

	got, err := repo.GetActiveBarber(ctx, barber.ID)
	require.NoError(t, err)
	assert.Equal(t, barber.ID, got.ID)

	// customers are not bookable
	_, err = repo.GetActiveBarber(ctx, customer.ID)
	assert.Error(t, err)

	// neither are deactivated barbers
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", barber.ID).
		Update("is_active", false).Error)

	_, err = repo.GetActiveBarber(ctx, barber.ID)
	assert.Error(t, err)
}
