package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"stravadash/internal/models/request_models"
	"stravadash/internal/services"
	"stravadash/pkg/utils"
)

type GroupController struct {
	groupService services.GroupServiceInterface
}

func NewGroupController(groupService services.GroupServiceInterface) *GroupController {
	return &GroupController{
		groupService: groupService,
	}
}

func (g *GroupController) CreateGroup(c *gin.Context) {
	var req request_models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	group, err := g.groupService.CreateGroup(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, group, "Group created")
}

func (g *GroupController) ListGroups(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	groups, err := g.groupService.ListGroups(c.Request.Context(), c.GetString("user_id"), c.Query("search"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, groups, "Groups fetched")
}

func (g *GroupController) ListMembers(c *gin.Context) {
	members, err := g.groupService.ListMembers(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, members, "Members fetched")
}

func (g *GroupController) Apply(c *gin.Context) {
	application, err := g.groupService.Apply(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if application == nil {
		utils.RespondSuccess(c, nil, "Joined group")
		return
	}
	utils.RespondSuccess(c, application, "Application submitted")
}

func (g *GroupController) ListApplications(c *gin.Context) {
	applications, err := g.groupService.ListApplications(c.Request.Context(), c.GetString("user_id"), c.Param("id"), c.Query("status"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, applications, "Applications fetched")
}

func (g *GroupController) ReviewApplication(c *gin.Context) {
	var req request_models.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := g.groupService.ReviewApplication(c.Request.Context(), c.GetString("user_id"), c.Param("application_id"), req.Status); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Application reviewed")
}
