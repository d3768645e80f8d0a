package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/middleware"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

type CreateAvailabilityRequest struct {
	BarberID  uint   `json:"barber_id"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Type      string `json:"type"`
	Reason    string `json:"reason"`
}

// ======================================================
// LIST (public — the booking wizard greys slots out)
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	q := h.db.Model(&models.BarberAvailability{})

	if barberStr := c.Query("barber_id"); barberStr != "" {
		barberID, err := strconv.ParseUint(barberStr, 10, 32)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid barber_id.")
			return
		}
		q = q.Where("barber_id = ?", barberID)
	}

	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var windows []models.BarberAvailability
	if err := q.
		Order("date ASC, start_time ASC").
		Find(&windows).Error; err != nil {

		httperr.Internal(c, "failed_to_list_availability", "Could not list availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": windows})
}

// ======================================================
// CREATE (barber/admin)
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Missing required fields.")
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid date.")
		return
	}
	if !validClock(req.StartTime) || !validClock(req.EndTime) {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid start or end time.")
		return
	}

	if req.Type == "" {
		req.Type = models.AvailabilityUnavailable
	}
	if !models.IsAvailabilityType(req.Type) {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid availability type.")
		return
	}

	// barbers declare their own time off; only admins set someone else's
	barberID := user.ID
	if req.BarberID != 0 && req.BarberID != user.ID {
		if user.Role != models.RoleAdmin {
			httperr.Forbidden(c, httperr.CodeForbidden, "You can only manage your own schedule.")
			return
		}
		barberID = req.BarberID
	}

	window := models.BarberAvailability{
		BarberID:  barberID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      req.Type,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&window).Error; err != nil {
		httperr.Internal(c, "failed_to_create_availability", "Could not save the window.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "availability": window})
}

// ======================================================
// DELETE (owner-or-admin; id in query, collection route)
// ======================================================

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Missing or invalid id.")
		return
	}

	var window models.BarberAvailability
	if err := h.db.First(&window, id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Availability window not found.")
		return
	}

	if user.Role != models.RoleAdmin && window.BarberID != user.ID {
		httperr.Forbidden(c, httperr.CodeForbidden, "You can only manage your own schedule.")
		return
	}

	if err := h.db.Delete(&window).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_availability", "Could not delete the window.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
