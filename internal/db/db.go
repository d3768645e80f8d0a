package db

import (
	"log"
	"time"

	"github.com/LupryM/Barbershop-Durban/internal/config"
	"github.com/LupryM/Barbershop-Durban/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Double-booking guard: cancelled rows never block a slot, so the
	// uniqueness is partial. Races past the in-transaction check land here.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
        ON appointments (barber_id, appointment_date, appointment_time)
        WHERE status <> 'cancelled'
    `)

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.BarberAvailability{},
		&models.OtpCode{},
		&models.Session{},
		&models.AuditLog{},
	)
}
