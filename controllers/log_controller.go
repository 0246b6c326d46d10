// file: controllers/log_controller.go
package controllers

import (
	"strconv"
	"strings"

	"github.com/bytehatacademy/alien-recon-portal/database"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"github.com/bytehatacademy/alien-recon-portal/utils"
	"github.com/gin-gonic/gin"
)

// AdminListSubmissionLogs —— 提交流水查询（管理员），排查爆破和作弊用
func AdminListSubmissionLogs(c *gin.Context) {
	missionID := strings.TrimSpace(c.Query("mission_id"))
	userID := strings.TrimSpace(c.Query("user_id"))
	result := strings.TrimSpace(c.Query("result"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	db := database.DB.Model(&models.SubmissionLog{})
	if missionID != "" {
		db = db.Where("mission_id = ?", missionID)
	}
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}
	if result != "" {
		switch models.FlagResult(result) {
		case models.FlagResultCorrect, models.FlagResultWrong, models.FlagResultDuplicate:
			db = db.Where("flag_result = ?", result)
		default:
			utils.Error(c, 1001, "Invalid result filter")
			return
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Error(c, 5000, "Failed to query submission logs")
		return
	}

	var logs []models.SubmissionLog
	if err := db.Order("submitted_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&logs).Error; err != nil {
		utils.Error(c, 5000, "Failed to query submission logs")
		return
	}

	utils.Success(c, "success", gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"logs":  logs,
	})
}
