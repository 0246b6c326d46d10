// file: services/unlock_service.go
package services

import (
	"github.com/bytehatacademy/alien-recon-portal/models"
)

type MissionStatus string

const (
	StatusLocked    MissionStatus = "locked"
	StatusAvailable MissionStatus = "available"
	StatusCompleted MissionStatus = "completed"
)

// UnlockStatus 判定任务对某用户的解锁状态。纯函数，每次请求现算，
// 不做任何缓存：completed 集合随提交而变。
// 注意：前置任务被下架不等于解锁，没完成就是没完成
func UnlockStatus(mission models.Mission, completed map[string]bool) MissionStatus {
	if completed[mission.ID] {
		return StatusCompleted
	}
	if mission.UnlockRequirement == nil || *mission.UnlockRequirement == "" {
		return StatusAvailable
	}
	if completed[*mission.UnlockRequirement] {
		return StatusAvailable
	}
	return StatusLocked
}
