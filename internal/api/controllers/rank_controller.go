package controllers

import (
	"github.com/gin-gonic/gin"
	"stravadash/internal/services"
	"stravadash/pkg/utils"
)

type RankController struct {
	rankService services.RankServiceInterface
}

func NewRankController(rankService services.RankServiceInterface) *RankController {
	return &RankController{
		rankService: rankService,
	}
}

func (r *RankController) GroupLeaderboard(c *gin.Context) {
	leaderboard, err := r.rankService.GroupLeaderboard(
		c.Request.Context(),
		c.GetString("user_id"),
		c.Param("id"),
		c.Query("period"),
		c.Query("rank_type"),
		c.Query("gender"),
		c.Query("age"),
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, leaderboard, "Leaderboard fetched")
}
