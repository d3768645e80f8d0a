package appointment

import (
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

// ===============================
// Role scoping
// ===============================

// Every endpoint funnels its role decision through these, instead of
// re-branching per handler.

// CanView reports whether the caller may read the appointment at all.
// Customers see their own bookings, barbers their own schedule, admins
// everything.
func CanView(role string, userID uint, ap *models.Appointment) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleBarber:
		return ap.BarberID == userID
	default:
		return ap.CustomerID == userID
	}
}

// AssertCanSetStatus gates status targets by role: confirmed/completed
// are staff transitions, customers may only cancel.
func AssertCanSetStatus(role string, target Status) error {
	if target == StatusCancelled {
		return nil
	}
	if !models.IsStaff(role) {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return nil
}
