package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/LupryM/Barbershop-Durban/internal/httpresp"
)

// The shop runs a fixed menu; prices are display strings in Rand.
type Service struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
}

var serviceCatalog = []Service{
	{ID: 1, Name: "Normal Haircut", Description: "XCLUSIVE haircut", Price: "R100", Duration: "30 min"},
	{ID: 2, Name: "Haircut with Dye", Description: "XCLUSIVE haircut with dye", Price: "R150", Duration: "45 min"},
	{ID: 3, Name: "Full House", Description: "With dye and fibre", Price: "R180", Duration: "60 min"},
	{ID: 4, Name: "Clipper Chiskop", Description: "XCLUSIVE bald cut", Price: "R60", Duration: "20 min"},
	{ID: 5, Name: "Razor Blade Chiskop", Description: "XCLUSIVE bald cut", Price: "R70", Duration: "30 min"},
	{ID: 6, Name: "Hair Colouring - Black", Description: "XCLUSIVE hair colouring", Price: "R100", Duration: "45 min"},
	{ID: 7, Name: "Hair Colouring - Blond", Description: "XCLUSIVE hair colouring", Price: "R100", Duration: "45 min"},
	{ID: 8, Name: "Hair Colouring - White", Description: "XCLUSIVE hair colouring", Price: "R200", Duration: "60 min"},
}

type ServiceHandler struct{}

func NewServiceHandler() *ServiceHandler {
	return &ServiceHandler{}
}

func (h *ServiceHandler) List(c *gin.Context) {
	httpresp.OK(c, gin.H{"services": serviceCatalog})
}
