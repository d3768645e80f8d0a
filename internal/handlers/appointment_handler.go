package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/middleware"
	ucAppointment "github.com/LupryM/Barbershop-Durban/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *ucAppointment.CreateAppointment
	update *ucAppointment.UpdateAppointment
	cancel *ucAppointment.CancelAppointment
	list   *ucAppointment.ListAppointments
	get    *ucAppointment.GetAppointment
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	cancel *ucAppointment.CancelAppointment,
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		update: update,
		cancel: cancel,
		list:   list,
		get:    get,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID        uint   `json:"barber_id" binding:"required"`
	ServiceName     string `json:"service_name" binding:"required"`
	ServicePrice    string `json:"service_price"`
	ServiceDuration string `json:"service_duration"`
	Date            string `json:"appointment_date" binding:"required"`
	Time            string `json:"appointment_time" binding:"required"`
}

type UpdateAppointmentRequest struct {
	Date   *string `json:"appointment_date"`
	Time   *string `json:"appointment_time"`
	Status *string `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Missing required fields.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CustomerID:      user.ID,
		BarberID:        req.BarberID,
		ServiceName:     req.ServiceName,
		ServicePrice:    req.ServicePrice,
		ServiceDuration: req.ServiceDuration,
		Date:            req.Date,
		Time:            req.Time,
	})
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Could not create the appointment.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "appointment": ap})
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	aps, err := h.list.Execute(
		c.Request.Context(),
		user,
		c.Query("status"),
		c.Query("date"),
	)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": aps})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), user, id)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Could not fetch the appointment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": ap})
}

// ======================================================
// UPDATE (reschedule and/or status transition)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid request body.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		AppointmentID: id,
		CallerID:      user.ID,
		CallerRole:    user.Role,
		Date:          req.Date,
		Time:          req.Time,
		Status:        req.Status,
	})
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Could not update the appointment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointment": ap})
}

// ======================================================
// CANCEL (DELETE = status write, never row removal)
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), user.ID, user.Role, id)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel_appointment", "Could not cancel the appointment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointment": ap})
}
