// file: controllers/mission_controller.go
package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bytehatacademy/alien-recon-portal/database"
	"github.com/bytehatacademy/alien-recon-portal/dto"
	"github.com/bytehatacademy/alien-recon-portal/mappers"
	"github.com/bytehatacademy/alien-recon-portal/middlewares"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"github.com/bytehatacademy/alien-recon-portal/services"
	"github.com/bytehatacademy/alien-recon-portal/utils"
	"github.com/gin-gonic/gin"
)

// ListMissions —— 用户可见的任务列表，附带每个任务的解锁状态
func ListMissions(c *gin.Context) {
	userID := c.GetString("user_id")

	missions, err := services.ListActiveMissions()
	if err != nil {
		utils.Error(c, 5000, "Failed to query missions")
		return
	}

	completed, err := services.CompletedMissionSet(database.DB, userID)
	if err != nil {
		utils.Error(c, 5000, "Failed to query completions")
		return
	}

	items := make([]dto.MissionItemResp, 0, len(missions))
	for _, m := range missions {
		items = append(items, mappers.ToMissionItem(m, services.UnlockStatus(m, completed)))
	}

	utils.Success(c, "success", gin.H{
		"total":           len(items),
		"completed_count": len(completed),
		"missions":        items,
	})
}

// GetMissionDetail —— 单个任务详情，未解锁的任务不放行
func GetMissionDetail(c *gin.Context) {
	userID := c.GetString("user_id")
	missionID := c.Param("id")

	mission, err := services.GetActiveMission(missionID)
	if err != nil {
		if errors.Is(err, services.ErrMissionNotFound) {
			utils.Error(c, 4004, "Mission not found")
			return
		}
		utils.Error(c, 5000, "Failed to query mission")
		return
	}

	completed, err := services.CompletedMissionSet(database.DB, userID)
	if err != nil {
		utils.Error(c, 5000, "Failed to query completions")
		return
	}

	status := services.UnlockStatus(*mission, completed)
	if status == services.StatusLocked {
		utils.Error(c, 4003, "Mission is locked. Complete previous missions to unlock.")
		return
	}

	utils.Success(c, "success", mappers.ToMissionDetail(*mission, status))
}

// GetMissionHint —— 按序号查看提示，记一条 hint_used 动态。
// 提示扣分暂不生效，PointDeduction 仅随提示返回
func GetMissionHint(c *gin.Context) {
	userID := c.GetString("user_id")
	missionID := c.Param("id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		utils.Error(c, 1002, "Invalid hint index")
		return
	}

	mission, err := services.GetActiveMission(missionID)
	if err != nil {
		if errors.Is(err, services.ErrMissionNotFound) {
			utils.Error(c, 4004, "Mission not found")
			return
		}
		utils.Error(c, 5000, "Failed to query mission")
		return
	}

	completed, err := services.CompletedMissionSet(database.DB, userID)
	if err != nil {
		utils.Error(c, 5000, "Failed to query completions")
		return
	}
	if services.UnlockStatus(*mission, completed) == services.StatusLocked {
		utils.Error(c, 4003, "Mission is locked")
		return
	}

	if index >= len(mission.Hints) {
		utils.Error(c, 4004, "Hint not found")
		return
	}

	if err := services.RecordHintUsed(database.DB, userID, *mission, index); err != nil {
		utils.Error(c, 5000, "Failed to record hint usage")
		return
	}

	utils.Success(c, "success", mappers.ToHintResp(mission.Hints[index], index))
}

// SubmitFlag —— 提交 Flag。结果分五类返回，前端按 code 分别提示
func SubmitFlag(c *gin.Context) {
	userID := c.GetString("user_id")
	missionID := c.Param("id")

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request: "+err.Error())
		return
	}
	req.Normalize()

	// 模板外形先行校验，明显不合格式的提交不进主流程
	if !utils.ValidFlagFormat(req.Flag) {
		middlewares.FlagSubmissions.WithLabelValues("malformed").Inc()
		utils.Error(c, 1003, "Flag format is invalid")
		return
	}

	meta := services.SubmissionMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	result, err := services.SubmitFlag(userID, missionID, req.Flag, meta)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissionNotFound):
			middlewares.FlagSubmissions.WithLabelValues("not_found").Inc()
			utils.Error(c, 4004, "Mission not found")
		case errors.Is(err, services.ErrUserNotFound):
			middlewares.FlagSubmissions.WithLabelValues("not_found").Inc()
			utils.Error(c, 4001, "User not found")
		case errors.Is(err, services.ErrMissionLocked):
			middlewares.FlagSubmissions.WithLabelValues("locked").Inc()
			utils.Error(c, 4003, "Mission is locked")
		case errors.Is(err, services.ErrAlreadyCompleted):
			middlewares.FlagSubmissions.WithLabelValues("duplicate").Inc()
			utils.Error(c, 2006, "Mission already completed")
		case errors.Is(err, services.ErrIncorrectFlag):
			middlewares.FlagSubmissions.WithLabelValues("wrong").Inc()
			utils.Error(c, 2007, "Incorrect flag")
		default:
			middlewares.FlagSubmissions.WithLabelValues("error").Inc()
			utils.Error(c, 5000, "Failed to process submission")
		}
		return
	}

	middlewares.FlagSubmissions.WithLabelValues("accepted").Inc()
	utils.Success(c, "Mission completed successfully!", result)
}

// ========== 管理员接口 ==========

// CreateMission —— 建题。Flag 模板、分值上限、前置任务都在这里卡
func CreateMission(c *gin.Context) {
	var req dto.CreateMissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request: "+err.Error())
		return
	}
	req.Normalize()

	if req.ID == "" || req.Title == "" || req.Description == "" ||
		req.Category == "" || req.Points == 0 || req.SortOrder == 0 {
		utils.Error(c, 1001, "Missing required fields")
		return
	}
	if req.Points > models.MaxMissionPoints {
		utils.Error(c, 1001, "Points exceed the allowed maximum")
		return
	}
	if !utils.ValidFlagFormat(req.Flag) {
		utils.Error(c, 1003, "Flag format is invalid")
		return
	}
	switch models.MissionDifficulty(req.Difficulty) {
	case models.DifficultyBeginner, models.DifficultyIntermediate,
		models.DifficultyAdvanced, models.DifficultyExpert:
	default:
		utils.Error(c, 1001, "Invalid difficulty")
		return
	}

	if taken, err := services.ActiveOrderTaken(req.ID, req.SortOrder); err != nil {
		utils.Error(c, 5000, "Failed to check sort order")
		return
	} else if taken {
		utils.Error(c, 2008, "Sort order is already used by an active mission")
		return
	}

	var unlockReq *string
	if req.UnlockRequirement != "" {
		if req.UnlockRequirement == req.ID {
			utils.Error(c, 1001, "Mission cannot require itself")
			return
		}
		var prereq models.Mission
		if err := database.DB.First(&prereq, "id = ?", req.UnlockRequirement).Error; err != nil {
			utils.Error(c, 4004, "Unlock requirement mission does not exist")
			return
		}
		unlockReq = &req.UnlockRequirement
	}

	mission := models.Mission{
		ID:                req.ID,
		Title:             req.Title,
		Description:       req.Description,
		Difficulty:        models.MissionDifficulty(req.Difficulty),
		Category:          models.MissionCategory(req.Category),
		Points:            req.Points,
		EstimatedTime:     req.EstimatedTime,
		FileURL:           req.FileURL,
		Flag:              req.Flag,
		UnlockRequirement: unlockReq,
		IsActive:          true,
		SortOrder:         req.SortOrder,
	}
	for i, h := range req.Hints {
		mission.Hints = append(mission.Hints, models.Hint{
			Text:           strings.TrimSpace(h.Text),
			PointDeduction: h.PointDeduction,
			SortOrder:      uint(i),
		})
	}

	if err := database.DB.Create(&mission).Error; err != nil {
		utils.Error(c, 5000, "Failed to create mission: "+err.Error())
		return
	}
	utils.Success(c, "Mission created successfully", gin.H{"id": mission.ID})
}

// UpdateMission —— 部分更新。改分值不回溯历史通关记录的 points_earned
func UpdateMission(c *gin.Context) {
	missionID := c.Param("id")

	var mission models.Mission
	if err := database.DB.First(&mission, "id = ?", missionID).Error; err != nil {
		utils.Error(c, 4004, "Mission not found")
		return
	}

	var req dto.UpdateMissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Difficulty != nil {
		updates["difficulty"] = models.MissionDifficulty(strings.ToLower(*req.Difficulty))
	}
	if req.Category != nil {
		updates["category"] = models.MissionCategory(*req.Category)
	}
	if req.Points != nil {
		if *req.Points == 0 || *req.Points > models.MaxMissionPoints {
			utils.Error(c, 1001, "Points out of range")
			return
		}
		updates["points"] = *req.Points
	}
	if req.EstimatedTime != nil {
		updates["estimated_time"] = *req.EstimatedTime
	}
	if req.FileURL != nil {
		updates["file_url"] = *req.FileURL
	}
	if req.Flag != nil {
		if !utils.ValidFlagFormat(strings.TrimSpace(*req.Flag)) {
			utils.Error(c, 1003, "Flag format is invalid")
			return
		}
		updates["flag"] = strings.TrimSpace(*req.Flag)
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.Error(c, 1001, "Nothing to update")
		return
	}

	// 改完之后若任务处于启用态，展示顺序不得与其他启用任务撞车
	newOrder := mission.SortOrder
	if req.SortOrder != nil {
		newOrder = *req.SortOrder
	}
	newActive := mission.IsActive
	if req.IsActive != nil {
		newActive = *req.IsActive
	}
	if newActive {
		if taken, err := services.ActiveOrderTaken(mission.ID, newOrder); err != nil {
			utils.Error(c, 5000, "Failed to check sort order")
			return
		} else if taken {
			utils.Error(c, 2008, "Sort order is already used by an active mission")
			return
		}
	}

	if err := database.DB.Model(&mission).Updates(updates).Error; err != nil {
		utils.Error(c, 5000, "Failed to update mission: "+err.Error())
		return
	}
	utils.Success(c, "Mission updated successfully", gin.H{"id": mission.ID})
}

// UpdateMissionStatus —— 上架/下架。任务不做物理删除
func UpdateMissionStatus(c *gin.Context) {
	missionID := c.Param("id")
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request")
		return
	}

	var mission models.Mission
	if err := database.DB.First(&mission, "id = ?", missionID).Error; err != nil {
		utils.Error(c, 4004, "Mission not found")
		return
	}

	// 重新上架时展示顺序可能已被顶替同位置的新任务占用
	if *req.IsActive && !mission.IsActive {
		if taken, err := services.ActiveOrderTaken(mission.ID, mission.SortOrder); err != nil {
			utils.Error(c, 5000, "Failed to check sort order")
			return
		} else if taken {
			utils.Error(c, 2008, "Sort order is already used by an active mission")
			return
		}
	}

	if err := database.DB.Model(&mission).Update("is_active", *req.IsActive).Error; err != nil {
		utils.Error(c, 5000, "Failed to update mission status")
		return
	}
	utils.Success(c, "Mission status updated", gin.H{
		"id":        mission.ID,
		"is_active": *req.IsActive,
	})
}

// AdminListMissions —— 管理员任务列表（含下架任务与 Flag，支持筛选+分页）
func AdminListMissions(c *gin.Context) {
	diff := strings.TrimSpace(c.Query("difficulty"))
	category := strings.TrimSpace(c.Query("category"))
	activeStr := strings.TrimSpace(c.Query("is_active"))
	kw := strings.TrimSpace(c.Query("keyword"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.DB.Model(&models.Mission{})
	if diff != "" {
		db = db.Where("difficulty = ?", models.MissionDifficulty(diff))
	}
	if category != "" {
		db = db.Where("category = ?", models.MissionCategory(category))
	}
	if activeStr != "" {
		db = db.Where("is_active = ?", activeStr == "true")
	}
	if kw != "" {
		like := "%" + kw + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Error(c, 5000, "Failed to query missions: "+err.Error())
		return
	}

	var list []models.Mission
	if err := db.Order("sort_order asc").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		utils.Error(c, 5000, "Failed to query missions: "+err.Error())
		return
	}

	items := make([]dto.AdminMissionItemResp, 0, len(list))
	for _, m := range list {
		items = append(items, mappers.ToAdminMissionItem(m))
	}

	utils.Success(c, "success", gin.H{
		"total":    total,
		"page":     page,
		"limit":    limit,
		"missions": items,
	})
}
