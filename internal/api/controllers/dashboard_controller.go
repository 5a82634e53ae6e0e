package controllers

import (
	"github.com/gin-gonic/gin"
	"stravadash/internal/services"
	"stravadash/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the viewer's profile, all four stat windows and the
// most recent activities in one payload.
func (d *DashboardController) GetDashboard(c *gin.Context) {
	dashboard, err := d.dashboardService.BuildDashboard(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dashboard, "Dashboard data fetched successfully")
}
