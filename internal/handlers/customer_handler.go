package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/httpresp"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

// Staff-facing customer directory: barbers and admins keep notes and
// preferences against the people they cut.

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

type UpdateCustomerRequest struct {
	Notes       *string `json:"notes"`
	Preferences *string `json:"preferences"`
}

// ======================================================
// LIST (barber/admin)
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("role = ?", models.RoleCustomer)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var customers []models.User
	if err := q.
		Order("created_at DESC").
		Find(&customers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_customers", "Could not list customers.")
		return
	}

	httpresp.List(c, customers)
}

// ======================================================
// GET / UPDATE (barber/admin)
// ======================================================

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var customer models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleCustomer).
		First(&customer).Error; err != nil {

		httperr.NotFound(c, httperr.CodeNotFound, "Customer not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var customer models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleCustomer).
		First(&customer).Error; err != nil {

		httperr.NotFound(c, httperr.CodeNotFound, "Customer not found.")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid request body.")
		return
	}

	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.Preferences != nil {
		customer.Preferences = *req.Preferences
	}

	if err := h.db.Save(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_update_customer", "Could not update the customer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customer": customer})
}
