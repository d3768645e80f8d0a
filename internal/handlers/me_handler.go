package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LupryM/Barbershop-Durban/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"phone":      user.Phone,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"created_at": user.CreatedAt,
			"last_login": user.LastLogin,
		},
	})
}
