// file: services/mission_service.go
package services

import (
	"errors"

	"github.com/bytehatacademy/alien-recon-portal/database"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"gorm.io/gorm"
)

// ListActiveMissions 按展示顺序返回所有启用任务。
// 返回的是完整模型，Flag 脱敏在 mappers 层完成，序列化前必须过一遍
func ListActiveMissions() ([]models.Mission, error) {
	var missions []models.Mission
	err := database.DB.
		Where("is_active = ?", true).
		Order("sort_order asc").
		Find(&missions).Error
	return missions, err
}

// GetActiveMission 按 slug 取单个启用任务，下架任务视同不存在
func GetActiveMission(id string) (*models.Mission, error) {
	var mission models.Mission
	err := database.DB.
		Preload("Hints", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		First(&mission, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, err
	}
	return &mission, nil
}

// ActiveOrderTaken 检查某展示顺序是否已被其他启用任务占用。
// 表上没有 (is_active, sort_order) 唯一索引，否则下架任务会互相冲突，
// 启用任务间的顺序唯一性由管理端写路径调用本函数把关
func ActiveOrderTaken(excludeID string, order uint) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Mission{}).
		Where("is_active = ? AND sort_order = ? AND id <> ?", true, order, excludeID).
		Count(&count).Error
	return count > 0, err
}

// CompletedMissionSet 查询用户已完成的任务集合。
// 通关记录表是唯一事实来源，不在用户表上冗余数组
func CompletedMissionSet(db *gorm.DB, userID string) (map[string]bool, error) {
	var ids []string
	if err := db.Model(&models.MissionCompletion{}).
		Where("user_id = ?", userID).
		Pluck("mission_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
