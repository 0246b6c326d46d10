// file: controllers/user_controller.go
package controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/bytehatacademy/alien-recon-portal/database"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"github.com/bytehatacademy/alien-recon-portal/services"
	"github.com/bytehatacademy/alien-recon-portal/utils"
	"github.com/gin-gonic/gin"
)

// --- 公开接口 ---

func Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required,min=2,max=50"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request: "+err.Error())
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.Error(c, 2001, "Email already registered")
		return
	}

	newUser := models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		// 段位是分数/进度的纯函数，注册时即按零进度推导
		Rank: services.DeriveRank(0, 0),
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		utils.Error(c, 5000, "Database error: "+err.Error())
		return
	}

	utils.Success(c, "User registered successfully", gin.H{
		"id":    newUser.ID,
		"email": newUser.Email,
		"name":  newUser.Name,
		"rank":  newUser.Rank,
	})
}

func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Error(c, 2002, "Invalid email or password")
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Error(c, 2002, "Invalid email or password")
		return
	}

	if user.Status == models.StatusDisabled {
		utils.Error(c, 2005, "Account disabled")
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Error(c, 5002, "Failed to generate token")
		return
	}

	now := time.Now()
	if err := database.DB.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("Failed to update last_login for %s: %v", user.ID, err)
	}
	if err := services.RecordLogin(database.DB, user); err != nil {
		log.Printf("Failed to record login activity for %s: %v", user.ID, err)
	}

	utils.Success(c, "Login success", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"rank":  user.Rank,
			"score": user.Score,
		},
	})
}

// --- 需要登录的接口 ---

// GetProfile —— 当前用户档案：基本信息 + 最近动态 + 通关统计
func GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(c, 4004, "User not found")
		return
	}

	var activities []models.Activity
	database.DB.Where("user_id = ?", userID).
		Order("created_at desc").Limit(10).Find(&activities)

	var stats struct {
		TotalCompleted  int64   `json:"total_completed"`
		TotalAttempts   uint    `json:"total_attempts"`
		TotalHintsUsed  uint    `json:"total_hints_used"`
		TotalTimeSpent  uint    `json:"total_time_spent"`
		AverageAttempts float64 `json:"average_attempts"`
	}
	database.DB.Model(&models.MissionCompletion{}).
		Where("user_id = ?", userID).
		Select("COUNT(*) as total_completed, " +
			"COALESCE(SUM(attempts),0) as total_attempts, " +
			"COALESCE(SUM(hints_used),0) as total_hints_used, " +
			"COALESCE(SUM(time_spent),0) as total_time_spent, " +
			"COALESCE(AVG(attempts),0) as average_attempts").
		Scan(&stats)

	utils.Success(c, "success", gin.H{
		"user":       user,
		"activities": activities,
		"stats":      stats,
	})
}

// GetActivities —— 当前用户动态流，支持按类型筛选
func GetActivities(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	db := database.DB.Model(&models.Activity{}).Where("user_id = ?", userID)
	if t := c.Query("type"); t != "" {
		switch models.ActivityType(t) {
		case models.ActivityMissionCompleted, models.ActivityRankPromoted,
			models.ActivityHintUsed, models.ActivityLogin:
			db = db.Where("type = ?", t)
		default:
			utils.Error(c, 1001, "Invalid activity type")
			return
		}
	}

	var total int64
	db.Count(&total)

	var activities []models.Activity
	if err := db.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&activities).Error; err != nil {
		utils.Error(c, 5000, "Failed to query activities")
		return
	}

	utils.Success(c, "success", gin.H{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"activities": activities,
	})
}

// --- 仅管理员可访问的接口 ---

func GetUserList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	query := c.Query("query")
	var users []models.User
	var total int64
	db := database.DB.Model(&models.User{})
	if query != "" {
		db = db.Where("name LIKE ? OR email LIKE ?", "%"+query+"%", "%"+query+"%")
	}
	db.Count(&total)
	db.Offset((page - 1) * pageSize).Limit(pageSize).Order("created_at desc").Find(&users)
	utils.Success(c, "success", gin.H{
		"total": total,
		"users": users,
	})
}

func UpdateUserStatus(c *gin.Context) {
	targetUserID := c.Param("id")
	var req struct {
		Status models.UserStatus `json:"status" binding:"required,oneof=active disabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid status")
		return
	}
	var user models.User
	if err := database.DB.First(&user, "id = ?", targetUserID).Error; err != nil {
		utils.Error(c, 4004, "User not found")
		return
	}
	if user.Role == models.RoleAdmin {
		utils.Error(c, 2010, "Admin account cannot be modified")
		return
	}
	database.DB.Model(&user).Update("status", req.Status)
	utils.Success(c, "User status updated", gin.H{
		"user_id": user.ID,
		"status":  req.Status,
	})
}
