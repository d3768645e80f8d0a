package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/LupryM/Barbershop-Durban/internal/domain/appointment"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
	"github.com/LupryM/Barbershop-Durban/internal/timezone"
)

// ======================================================
// HANDLER (admin only — cross-barber reporting)
// ======================================================

type AnalyticsHandler struct {
	db *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

func (h *AnalyticsHandler) Get(c *gin.Context) {
	period := c.DefaultQuery("period", "week")

	var days int
	switch period {
	case "day":
		days = 1
	case "week":
		days = 7
	case "month":
		days = 30
	default:
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "period must be day, week or month.")
		return
	}

	end := timezone.Now()
	start := end.AddDate(0, 0, -days)
	startDate := start.Format("2006-01-02")
	endDate := end.Format("2006-01-02")

	var aps []models.Appointment
	if err := h.db.
		Preload("Barber").
		Where("appointment_date > ? AND appointment_date <= ?", startDate, endDate).
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_load_analytics", "Could not load analytics.")
		return
	}

	// Prices are display strings ("R100"); strip the currency tag to sum.
	var revenue, completed, cancelled int
	byService := map[string]int{}
	serviceCount := map[string]int{}
	barberRevenue := map[uint]int{}
	barberName := map[uint]string{}
	barberCompleted := map[uint]int{}
	daily := map[string]int{}
	customers := map[uint]bool{}

	for _, ap := range aps {
		customers[ap.CustomerID] = true
		serviceCount[ap.ServiceName]++

		switch domain.Status(ap.Status) {
		case domain.StatusCancelled:
			cancelled++
		case domain.StatusCompleted:
			completed++
			price := parseRandPrice(ap.ServicePrice)
			revenue += price
			byService[ap.ServiceName] += price
			barberRevenue[ap.BarberID] += price
			barberCompleted[ap.BarberID]++
			barberName[ap.BarberID] = ap.Barber.Name
			daily[ap.AppointmentDate] += price
		}
	}

	cancellationRate := "0"
	if len(aps) > 0 {
		cancellationRate = fmt.Sprintf("%.1f", float64(cancelled)/float64(len(aps))*100)
	}

	avgBookings := 0.0
	if len(customers) > 0 {
		avgBookings = float64(len(aps)) / float64(len(customers))
	}

	c.JSON(http.StatusOK, gin.H{
		"period":    period,
		"dateRange": gin.H{"start": startDate, "end": endDate},
		"revenue": gin.H{
			"total":                  revenue,
			"completed_appointments": completed,
			"by_service":             sortedCounts(byService),
		},
		"popular_services": sortedCounts(serviceCount),
		"barber_stats":     barberStats(barberName, barberRevenue, barberCompleted),
		"daily_breakdown":  sortedCounts(daily),
		"customer_metrics": gin.H{
			"unique_customers":          len(customers),
			"total_bookings":            len(aps),
			"avg_bookings_per_customer": avgBookings,
		},
		"cancellation_rate": cancellationRate,
	})
}

// ======================================================
// HELPERS
// ======================================================

func parseRandPrice(price string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(price), "R"))
	return n
}

type namedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func sortedCounts(m map[string]int) []namedCount {
	out := make([]namedCount, 0, len(m))
	for name, value := range m {
		out = append(out, namedCount{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type barberStat struct {
	BarberID  uint   `json:"barber_id"`
	Name      string `json:"name"`
	Revenue   int    `json:"revenue"`
	Completed int    `json:"completed"`
}

func barberStats(names map[uint]string, revenue, completed map[uint]int) []barberStat {
	out := make([]barberStat, 0, len(names))
	for id, name := range names {
		out = append(out, barberStat{
			BarberID:  id,
			Name:      name,
			Revenue:   revenue[id],
			Completed: completed[id],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}
