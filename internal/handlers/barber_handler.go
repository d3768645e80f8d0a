package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

type barberProfile struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	Experience string `json:"experience"`
	ImageURL   string `json:"image_url"`
}

// List is the public directory shown on the booking wizard's barber step.
func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.User
	if err := h.db.
		Where("role = ? AND is_active = ?", models.RoleBarber, true).
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	out := make([]barberProfile, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, barberProfile{
			ID:         b.ID,
			Name:       b.Name,
			Specialty:  b.Specialty,
			Experience: b.Experience,
			ImageURL:   b.ImageURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{"barbers": out})
}
