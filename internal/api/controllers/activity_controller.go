package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"stravadash/internal/models/request_models"
	"stravadash/internal/services"
	"stravadash/pkg/utils"
)

type ActivityController struct {
	activityService services.ActivityServiceInterface
}

func NewActivityController(activityService services.ActivityServiceInterface) *ActivityController {
	return &ActivityController{
		activityService: activityService,
	}
}

func (a *ActivityController) ListActivities(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, err := a.activityService.ListActivities(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Activities fetched successfully")
}

func (a *ActivityController) GetActivity(c *gin.Context) {
	activity, err := a.activityService.GetActivity(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "Activity fetched successfully")
}

// UpdateActivity edits name, race flag, chip time and race distance. A later
// Strava re-import overwrites these again with derived values.
func (a *ActivityController) UpdateActivity(c *gin.Context) {
	var req request_models.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.activityService.UpdateActivity(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Activity updated successfully")
}
