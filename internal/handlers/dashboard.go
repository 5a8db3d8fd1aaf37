package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/utkarsh/ngo-portal/backend/internal/services"
	"github.com/utkarsh/ngo-portal/backend/pkg/response"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
	}
}

// GetMonthlySummary returns aggregated totals and the per-NGO breakdown.
// GET /api/reports/dashboard?month=January&year=2024
func (h *DashboardHandler) GetMonthlySummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		response.BadRequest(c, "Month is required")
		return
	}

	valid := false
	for _, name := range services.ValidMonths {
		if name == month {
			valid = true
			break
		}
	}
	if !valid {
		response.BadRequest(c, "Invalid month")
		return
	}

	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(c, "Invalid year")
			return
		}
		year = parsed
	}

	summary, err := h.dashboardService.GetMonthlySummary(month, year)
	if err != nil {
		response.ServerError(c, "Failed to retrieve dashboard data")
		return
	}

	response.Success(c, "Dashboard data retrieved successfully", summary)
}
