// file: controllers/leaderboard_controller.go
package controllers

import (
	"strconv"

	"github.com/bytehatacademy/alien-recon-portal/database"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"github.com/bytehatacademy/alien-recon-portal/services"
	"github.com/bytehatacademy/alien-recon-portal/utils"
	"github.com/gin-gonic/gin"
)

// GetLeaderboard 查询排行榜，附带当前用户名次
func GetLeaderboard(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	entries, total, err := services.GetLeaderboard(page, limit)
	if err != nil {
		utils.Error(c, 5000, "Failed to query leaderboard")
		return
	}

	var position int64
	if userID := c.GetString("user_id"); userID != "" {
		position, _ = services.UserPosition(userID)
	}

	utils.Success(c, "success", gin.H{
		"leaderboard":   entries,
		"total":         total,
		"page":          page,
		"limit":         limit,
		"user_position": position,
	})
}

// GetActivityFeed 查询实时通关/晋升动态，登录与否均可访问
func GetActivityFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var results []models.Activity
	database.DB.
		Where("type IN ?", []models.ActivityType{
			models.ActivityMissionCompleted,
			models.ActivityRankPromoted,
		}).
		Order("created_at desc").Limit(limit).Find(&results)

	utils.Success(c, "success", results)
}
