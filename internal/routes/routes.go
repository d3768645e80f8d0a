package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LupryM/Barbershop-Durban/internal/audit"
	"github.com/LupryM/Barbershop-Durban/internal/auth"
	"github.com/LupryM/Barbershop-Durban/internal/config"
	"github.com/LupryM/Barbershop-Durban/internal/handlers"
	infraRepo "github.com/LupryM/Barbershop-Durban/internal/infra/repository"
	"github.com/LupryM/Barbershop-Durban/internal/middleware"
	"github.com/LupryM/Barbershop-Durban/internal/models"
	"github.com/LupryM/Barbershop-Durban/internal/sms"
	ucAppointment "github.com/LupryM/Barbershop-Durban/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	smsDispatcher := sms.NewDispatcher(sms.LogSender{})

	authService := auth.NewService(db, smsDispatcher, auditDispatcher)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authService, cfg)
	meHandler := handlers.NewMeHandler()

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsUC,
		getAppointmentUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	serviceHandler := handlers.NewServiceHandler()
	customerHandler := handlers.NewCustomerHandler(db)
	analyticsHandler := handlers.NewAnalyticsHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.SessionMiddleware(authService))
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/barbers", barberHandler.List)
		api.GET("/services", serviceHandler.List)
		api.GET("/availability", availabilityHandler.List)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/send-otp", authHandler.SendOtp)
		api.POST("/auth/verify-otp", authHandler.VerifyOtp)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// SESSION REQUIRED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireAuth())
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)
		}

		// ------------------------------
		// STAFF (barber/admin)
		// ------------------------------
		staff := api.Group("/")
		staff.Use(middleware.RequireAuth(models.RoleBarber, models.RoleAdmin))
		{
			staff.POST("/availability", availabilityHandler.Create)
			staff.DELETE("/availability", availabilityHandler.Delete)

			staff.GET("/customers", customerHandler.List)
			staff.GET("/customers/:id", customerHandler.Get)
			staff.PATCH("/customers/:id", customerHandler.Update)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.RequireAuth(models.RoleAdmin))
		{
			admin.GET("/analytics", analyticsHandler.Get)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
